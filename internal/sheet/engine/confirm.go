package engine

// Confirmer asks the user a yes/no question. decide may be called before
// Confirm returns or later from the engine goroutine; it must be called at
// most once.
type Confirmer interface {
	Confirm(prompt string, decide func(yes bool))
}

// ConfirmFunc adapts a blocking yes/no prompt to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f and reports its answer immediately.
func (f ConfirmFunc) Confirm(prompt string, decide func(yes bool)) {
	decide(f(prompt))
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

const (
	// DefaultResetPrompt is shown before wiping the sheet.
	DefaultResetPrompt = "Pip-Boy: Would you like to reset your data?"
	// DefaultSavePrompt is shown before a user-requested save when
	// confirmation is enabled.
	DefaultSavePrompt = "Pip-Boy: Would you like to save your data?"
)
