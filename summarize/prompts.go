package summarize

import "fmt"

const gistPromptTemplate = "Please provide a concise summary of the following conversation. " +
	"Focus on the main topics discussed and the overall context. " +
	"Keep the summary brief (2-3 sentences).\n\nConversation:\n%s"

const keyPointsPromptTemplate = "Extract the key points from the following conversation. " +
	"Format your response as a bullet-point list of the most important information, " +
	"insights, or decisions. Focus on substance, not conversation flow.\n\nConversation:\n%s"

func buildPrompt(summaryType SummaryType, transcript string) (string, bool) {
	switch summaryType {
	case TypeGist:
		return fmt.Sprintf(gistPromptTemplate, transcript), true
	case TypeKeyPoints:
		return fmt.Sprintf(keyPointsPromptTemplate, transcript), true
	default:
		return "", false
	}
}
