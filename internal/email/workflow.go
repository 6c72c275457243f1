package email

import "strings"

var (
	orderKeywords = []string{
		"bestelling", "bestellen", "order", "inkooporder", "offerte", "quote", "quotation",
		"purchase", "aankoop", "factuur", "invoice", "levering", "delivery",
	}

	taskKeywords = []string{
		"taak", "task", "todo", "to-do", "actie vereist", "action required", "deadline",
		"reparatie", "repair", "onderhoud", "maintenance", "werkorder", "afspraak", "storing",
	}
)

// DetectWorkflowType classifies a message by keywords in its subject and
// body. Order terms win over task terms; anything else is a notification.
func DetectWorkflowType(msg *Message) WorkflowType {
	text := strings.ToLower(msg.Subject + " " + msg.Body)

	if containsAny(text, orderKeywords) {
		return WorkflowOrder
	}

	if containsAny(text, taskKeywords) {
		return WorkflowTask
	}

	return WorkflowNotification
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}

	return false
}
