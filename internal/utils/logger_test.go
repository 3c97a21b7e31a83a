package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The logger doubles as the notification surface for the screen services
var _ Notifier = (*Logger)(nil)

func TestLoggerServesAsNotifier(t *testing.T) {
	var n Notifier = NewLogger()
	assert.NotPanics(t, func() {
		n.Success("Flight created successfully")
		n.Error("No response from server")
	})
}
