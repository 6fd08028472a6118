// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain errors shared across packages
var (
	// ErrInvalidChunking indicates malformed chunking parameters
	// (non-positive size or overlap >= size). Callers should treat this
	// as a programmer error and fail fast.
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrUnsupportedFormat indicates an unknown export or summary format string.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
