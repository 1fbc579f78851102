package types

type SessionStep string

const (
	StepIdle            SessionStep = "idle"
	StepAwaitingField   SessionStep = "awaiting_field"
	StepAwaitingConfirm SessionStep = "awaiting_confirm"
)

type ContentType string

const (
	ContentProduct ContentType = "product"
	ContentSite    ContentType = "site"
	ContentSocial  ContentType = "social"
)
