package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirm prompts the user for confirmation.
// Returns true if user confirms, false otherwise.
func confirm(message string) bool {
	fmt.Printf("%s (yes/no): ", message)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

// checkConfirmation prompts before an --execute run against an environment
// whose config file entry sets require_confirmation.
func (app *App) checkConfirmation(operation string) error {
	if !app.requiresConfirmation() {
		return nil
	}

	env := app.getEnvironmentName()
	message := fmt.Sprintf("WARNING: you are about to %s against the %s environment\nDSN: %s\nContinue?",
		operation, strings.ToUpper(env), app.config.DSN)

	if !confirm(message) {
		return fmt.Errorf("operation cancelled")
	}
	return nil
}
