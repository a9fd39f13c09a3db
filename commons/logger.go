package commons

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is shared by every package. It is usable before InitLogger runs.
var Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "dekho"})

func prefix() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#E4572E")).
		Bold(true).
		Padding(0, 1).
		Render("DekhoCrawler")
}

// InitLogger reconfigures Logger for the running process.
func InitLogger(debug bool) {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Prefix:          prefix(),
	})

	if debug {
		Logger.SetLevel(log.DebugLevel)
		Logger.Debug("debug logging enabled")
	} else {
		Logger.SetLevel(log.InfoLevel)
	}
}
