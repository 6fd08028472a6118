package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/chatindex/ai"
)

const entityPromptTemplate = `Extract the named entities from the given text and return them as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this shape:

{
  "entities": [
    {"text": "...", "label": "...", "start": 0, "end": 0}
  ]
}

Rules:
- "text" is the entity exactly as it appears in the input, including casing.
- "label" must match exactly one of the listed values: %s.
- "start" and "end" are character offsets of the span in the input (end exclusive).
- Include only entities that literally appear in the text. Do not hallucinate.
- If no entities can be identified, return "entities": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "John Smith works at Microsoft."
Output:
{
  "entities": [
    {"text":"John Smith","label":"PERSON","start":0,"end":10},
    {"text":"Microsoft","label":"ORG","start":20,"end":29}
  ]
}`

const relationshipPromptTemplate = `Extract subject-verb-object relationships from the given text and return them as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this shape:

{
  "relationships": [
    {"subject": "...", "predicate": "...", "object": "..."}
  ]
}

Rules:
- A relationship is a verb with a nominal subject and a direct object,
  prepositional object, or attribute.
- "predicate" is the lemma (base form) of the verb: "works" becomes "work".
- Expand subject and object to include adjacent compound nouns
  ("John Smith", not just "Smith").
- Include only relationships explicitly stated in the text. Do not hallucinate.
- If no relationships can be identified, return "relationships": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "John Smith works at Microsoft."
Output:
{
  "relationships": [
    {"subject":"John Smith","predicate":"work","object":"Microsoft"}
  ]
}`

// buildEntityPrompt returns the system prompt for entity extraction.
func buildEntityPrompt() string {
	return fmt.Sprintf(entityPromptTemplate, strings.Join(ai.EntityLabels, ", "))
}

// buildRelationshipPrompt returns the system prompt for relationship extraction.
func buildRelationshipPrompt() string {
	return relationshipPromptTemplate
}
