package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandLoggerHonorsVerbose(t *testing.T) {
	defer func() { verbose = false }()

	verbose = false
	var buf bytes.Buffer
	log := newCommandLogger("discovery")
	log.SetOutput(&buf)
	log.Debug("adding column")
	assert.Empty(t, buf.String(), "debug output without --verbose")

	verbose = true
	buf.Reset()
	log = newCommandLogger("discovery")
	log.SetOutput(&buf)
	log.Debug("adding column")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "adding column")
}
