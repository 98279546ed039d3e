package protocol

import (
	"sort"

	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// Method is a canonical JSON-RPC method name
type Method string

// Canonical method names
const (
	MethodMessageSend                  Method = "message/send"
	MethodMessageStream                Method = "message/stream"
	MethodTasksGet                     Method = "tasks/get"
	MethodTasksCancel                  Method = "tasks/cancel"
	MethodTasksPushNotificationSet     Method = "tasks/pushNotificationConfig/set"
	MethodTasksPushNotificationGet     Method = "tasks/pushNotificationConfig/get"
	MethodTasksPushNotificationList    Method = "tasks/pushNotificationConfig/list"
	MethodTasksPushNotificationDelete  Method = "tasks/pushNotificationConfig/delete"
	MethodTasksResubscribe             Method = "tasks/resubscribe"
	MethodAgentGetAuthenticatedExtCard Method = "agent/getAuthenticatedExtendedCard"
)

// methods maps every accepted name, canonical or legacy, to its canonical
// form
var methods = map[string]Method{
	string(MethodMessageSend):                  MethodMessageSend,
	string(MethodMessageStream):                MethodMessageStream,
	string(MethodTasksGet):                     MethodTasksGet,
	string(MethodTasksCancel):                  MethodTasksCancel,
	string(MethodTasksPushNotificationSet):     MethodTasksPushNotificationSet,
	string(MethodTasksPushNotificationGet):     MethodTasksPushNotificationGet,
	string(MethodTasksPushNotificationList):    MethodTasksPushNotificationList,
	string(MethodTasksPushNotificationDelete):  MethodTasksPushNotificationDelete,
	string(MethodTasksResubscribe):             MethodTasksResubscribe,
	string(MethodAgentGetAuthenticatedExtCard): MethodAgentGetAuthenticatedExtCard,

	"sendMessage":                   MethodMessageSend,
	"sendStreamingMessage":          MethodMessageStream,
	"getTask":                       MethodTasksGet,
	"cancelTask":                    MethodTasksCancel,
	"setTaskPushNotificationConfig": MethodTasksPushNotificationSet,
	"getTaskPushNotificationConfig": MethodTasksPushNotificationGet,
	"resubscribeTask":               MethodTasksResubscribe,
}

// NormalizeMethod maps a canonical or legacy method name to its canonical
// form. Unknown names fail with a MalformedRequestError.
func NormalizeMethod(name string) (Method, error) {
	if method, ok := methods[name]; ok {
		return method, nil
	}
	return "", validation.NewMalformedRequestError(name)
}

// IsStreaming reports whether the method answers with an event stream
func (m Method) IsStreaming() bool {
	return m == MethodMessageStream || m == MethodTasksResubscribe
}

// IsLegacy reports whether name is an accepted legacy alias
func IsLegacy(name string) bool {
	method, ok := methods[name]
	return ok && string(method) != name
}

// CanonicalMethods returns every canonical method name, sorted
func CanonicalMethods() []Method {
	seen := map[Method]bool{}
	var canonical []Method
	for _, method := range methods {
		if !seen[method] {
			seen[method] = true
			canonical = append(canonical, method)
		}
	}
	sort.Slice(canonical, func(i, j int) bool { return canonical[i] < canonical[j] })
	return canonical
}
