package email

import "fmt"

// DocumentDecision names the review outcome a notification reports.
type DocumentDecision string

const (
	DecisionApproved DocumentDecision = "approved"
	DecisionRejected DocumentDecision = "rejected"
	DecisionReturned DocumentDecision = "returned"
)

// DocumentReviewSubject builds the subject line for a review notification.
func DocumentReviewSubject(typeName string, decision DocumentDecision) string {
	return fmt.Sprintf("ITPMS: %s has been %s", typeName, decision)
}

// DocumentReviewBody builds the HTML body for a review notification.
// reason is only rendered for rejections, fileURL only for returns.
func DocumentReviewBody(toName, typeName string, decision DocumentDecision, reason, fileURL string) string {
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Document review update</h2>
				<p>Hello %s,</p>
				<p>Your submission <strong>%s</strong> has been <strong>%s</strong>.</p>
	`, toName, typeName, decision)

	if decision == DecisionRejected && reason != "" {
		body += fmt.Sprintf(`<p>Reason: %s</p>`, reason)
	}
	if decision == DecisionReturned && fileURL != "" {
		body += fmt.Sprintf(`<p>The reviewed file is available <a href="%s">here</a>.</p>`, fileURL)
	}

	body += `
				<p>Best regards,<br>ITPMS Notify</p>
			</div>
		</body>
		</html>
	`
	return body
}
