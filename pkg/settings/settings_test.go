package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "logrotate_cronjob_config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRecord_WriteAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	err := Write(path, Record{
		CronjobEnabled: true,
		Frequency:      Weekly,
		RetentionDays:  180,
		DailySchedule:  "random,06:00,07:50",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "True\nweekly\n180\nrandom,06:00,07:50\n", string(data))

	f, err := Open(path)
	require.NoError(t, err)

	enabled, err := f.CronjobEnabled()
	assert.NoError(t, err)
	assert.True(t, enabled)

	frequency, err := f.Frequency()
	assert.NoError(t, err)
	assert.Equal(t, Weekly, frequency)

	days, err := f.RetentionDays()
	assert.NoError(t, err)
	assert.Equal(t, 180, days)

	schedule, err := f.DailySchedule()
	assert.NoError(t, err)
	assert.Equal(t, "random,06:00,07:50", schedule)
}

func TestRecord_Encode_Disabled(t *testing.T) {
	r := Record{Frequency: Daily, RetentionDays: 7, DailySchedule: "unset"}

	assert.Equal(t, "False\ndaily\n7\nunset\n", r.Encode())
}

func TestFile_CronjobEnabled_AnythingButTrueIsFalse(t *testing.T) {
	f, err := Open(writeSettings(t, "true\ndaily\n7\nunset\n"))
	require.NoError(t, err)

	enabled, err := f.CronjobEnabled()
	assert.NoError(t, err)
	assert.False(t, enabled)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestFile_RetentionDays_NotNumeric(t *testing.T) {
	f, err := Open(writeSettings(t, "True\ndaily\nninety\nunset\n"))
	require.NoError(t, err)

	_, err = f.RetentionDays()
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "retention_days")
}

func TestFile_RetentionDays_Negative(t *testing.T) {
	f, err := Open(writeSettings(t, "True\ndaily\n-1\nunset\n"))
	require.NoError(t, err)

	_, err = f.RetentionDays()
	assert.True(t, IsParseError(err))
}

func TestFile_TooFewLines(t *testing.T) {
	f, err := Open(writeSettings(t, "True\ndaily"))
	require.NoError(t, err)

	_, err = f.RetentionDays()
	assert.True(t, IsParseError(err))

	_, err = f.DailySchedule()
	assert.True(t, IsParseError(err))
}

func TestFile_Frequency_Unknown(t *testing.T) {
	f, err := Open(writeSettings(t, "True\nyearly\n7\nunset\n"))
	require.NoError(t, err)

	_, err = f.Frequency()
	assert.True(t, IsParseError(err))
}

func TestIsParseError_Wrapped(t *testing.T) {
	err := errors.Wrap(&ParseError{Path: "p", Field: "f", Err: errors.New("boom")}, "Unable to read config")

	assert.True(t, IsParseError(err))
	assert.False(t, IsParseError(errors.New("other")))
}

func TestRemove_MissingIsNotAnError(t *testing.T) {
	assert.NoError(t, Remove(filepath.Join(t.TempDir(), "missing")))
}
