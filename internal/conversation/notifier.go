package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// Prefixes mark notices in plain log output too.
const (
	noticePrefix = "• "
	urgentPrefix = "! "
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notices through printFn. Urgent notices are for
// failures the user should act on: a save that did not happen or a
// generation that failed.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a notifier. If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notice.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", noticeStyle.Render(noticePrefix+message))
	return nil
}

// NotifyUrgent prints an urgent notice.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Warn("notify-urgent: %s", message)
	n.printFn("%s", urgentStyle.Render(urgentPrefix+message))
	return nil
}
