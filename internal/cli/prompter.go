package cli

// Prompter abstracts the interactive prompts so commands stay testable.
type Prompter interface {
	Select(label string, items []string, defaultValue string) (int, string, error)
	Input(label string, defaultValue string) (string, error)
	Confirm(label string, defaultYes bool) (bool, error)
}
