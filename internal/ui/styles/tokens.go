package styles

// ColorToken is a themeable color name, used as a key under theme.colors.
type ColorToken string

const (
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenHeader      ColorToken = "row.header"
	TokenRowSelected ColorToken = "row.selected"
	TokenRowDone     ColorToken = "row.done"

	TokenPriorityLow    ColorToken = "priority.low"
	TokenPriorityMedium ColorToken = "priority.medium"
	TokenPriorityHigh   ColorToken = "priority.high"

	TokenModeNormal ColorToken = "mode.normal"
	TokenModeInsert ColorToken = "mode.insert"

	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"
)

// AllTokens lists every token ApplyTheme accepts.
var AllTokens = []ColorToken{
	TokenTextPrimary, TokenTextMuted,
	TokenBorderDefault, TokenBorderFocus,
	TokenHeader, TokenRowSelected, TokenRowDone,
	TokenPriorityLow, TokenPriorityMedium, TokenPriorityHigh,
	TokenModeNormal, TokenModeInsert,
	TokenToastSuccess, TokenToastError, TokenToastInfo, TokenToastWarn,
}
