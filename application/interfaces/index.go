package interfaces

import "net/http"

// ApplicationContext carries a parsed request through the application layer
// without tying controllers and usecases to the HTTP framework. Ctx holds the
// transport context and is only asserted back at the response boundary.
type ApplicationContext[T interface{}] struct {
	Ctx        interface{}
	Body       *T
	Keys       map[string]any
	Param      map[string]any
	Query      map[string]any
	Header     http.Header
	DeviceID   string
	DeviceName string
	UserAgent  string
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	if ac.Keys == nil {
		return ""
	}
	value, ok := ac.Keys[key].(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetStringParameter(key string) string {
	if ac.Param == nil {
		return ""
	}
	value, ok := ac.Param[key].(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}
