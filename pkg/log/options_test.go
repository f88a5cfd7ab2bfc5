package log

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	o := NewOptions()
	assert.Empty(t, o.Validate())

	o.Level = "loud"
	o.Format = "xml"
	assert.Len(t, o.Validate(), 2)
}

func TestOptionsAddFlags(t *testing.T) {
	o := NewOptions()
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"--log.level=debug", "--log.format=json", "--log.output-paths=stdout,/tmp/x.log"}))
	assert.Equal(t, "debug", o.Level)
	assert.Equal(t, "json", o.Format)
	assert.Equal(t, []string{"stdout", "/tmp/x.log"}, o.OutputPaths)
}
