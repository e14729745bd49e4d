package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "debug")
	defer Setup(nil, "info")

	For("drag").Debug("session started")

	assert := assert.New(t)
	assert.Equal(logrus.DebugLevel, Logger().GetLevel())
	assert.Contains(buf.String(), "component=drag")
	assert.Contains(buf.String(), "session started")
}

func TestSetupUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "chatty")
	defer Setup(nil, "info")

	assert.Equal(t, logrus.InfoLevel, Logger().GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
