package workflow

import (
	"strings"

	"github.com/noah-isme/lessonplan-api/internal/apiclient"
)

const successMessage = "Updated successfully"

// IsTransitionSuccess judges a lesson plan transition call. The transition
// endpoints signal success either with code 0 or with the literal message
// "Updated successfully" (optionally followed by "!"), and that message can
// also arrive as the text of a failed call. Only transition calls use this.
func IsTransitionSuccess(resp *apiclient.Response, err error) bool {
	if err != nil {
		return isSuccessMessage(err.Error())
	}
	if resp == nil {
		return false
	}
	return resp.Code == 0 || isSuccessMessage(resp.Message)
}

func isSuccessMessage(message string) bool {
	message = strings.TrimSpace(message)
	return message == successMessage || message == successMessage+"!"
}
