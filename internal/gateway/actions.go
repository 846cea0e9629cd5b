package gateway

import "encoding/json"

const (
	DescriptorQRString = "QR_STRING"
	DescriptorWebURL   = "WEB_URL"
	DescriptorDeeplink = "DEEPLINK_URL"
	ActionPresent      = "PRESENT_TO_CUSTOMER"
	ActionRedirect     = "REDIRECT_CUSTOMER"
)

type Action struct {
	Type       string `json:"type"`
	Descriptor string `json:"descriptor"`
	Value      string `json:"value"`
}

type actionsEnvelope struct {
	Actions []Action `json:"actions"`
}

// Actions extracts the action list from a raw payment request response.
func Actions(raw []byte) []Action {
	if len(raw) == 0 {
		return nil
	}
	var env actionsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return env.Actions
}

// FindAction returns the first action with the given descriptor.
func FindAction(raw []byte, descriptor string) (Action, bool) {
	for _, action := range Actions(raw) {
		if action.Descriptor == descriptor && action.Value != "" {
			return action, true
		}
	}
	return Action{}, false
}
