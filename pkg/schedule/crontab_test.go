package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const debianCrontab = `# /etc/crontab: system-wide crontab
SHELL=/bin/sh
PATH=/usr/local/sbin:/usr/local/bin:/sbin:/bin:/usr/sbin:/usr/bin

# Example of job definition:
# m h dom mon dow user	command
17 *	* * *	root    cd / && run-parts --report /etc/cron.hourly
25 6	* * *	root	test -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.daily )
47 6	* * 7	root	test -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.weekly )
52 6	1 * *	root	test -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.monthly )
#
`

func TestUpdateDailyLine(t *testing.T) {
	updated, found := UpdateDailyLine(debianCrontab, DefaultDailyDirectory, TimeOfDay{Hour: 8, Minute: 0})

	require.True(t, found)

	expected := `# /etc/crontab: system-wide crontab
SHELL=/bin/sh
PATH=/usr/local/sbin:/usr/local/bin:/sbin:/bin:/usr/sbin:/usr/bin

# Example of job definition:
# m h dom mon dow user	command
17 *	* * *	root    cd / && run-parts --report /etc/cron.hourly
00 08	* * *	root	test -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.daily )
47 6	* * 7	root	test -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.weekly )
52 6	1 * *	root	test -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.monthly )
#
`
	assert.Equal(t, expected, updated)
}

func TestUpdateDailyLine_SkipsComments(t *testing.T) {
	crontab := "# runs /etc/cron.daily at 6:25\n25 6 * * * root run-parts /etc/cron.daily\n"

	updated, found := UpdateDailyLine(crontab, DefaultDailyDirectory, TimeOfDay{Hour: 7, Minute: 5})

	assert.True(t, found)
	assert.Equal(t, "# runs /etc/cron.daily at 6:25\n05 07 * * * root run-parts /etc/cron.daily\n", updated)
}

func TestUpdateDailyLine_NoDailyLine(t *testing.T) {
	crontab := "17 * * * * root cd / && run-parts --report /etc/cron.hourly\n"

	updated, found := UpdateDailyLine(crontab, DefaultDailyDirectory, TimeOfDay{Hour: 7, Minute: 5})

	assert.False(t, found)
	assert.Equal(t, crontab, updated)
}

func TestCrontab_UpdateDaily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte(debianCrontab), 0640))

	c := Crontab{Path: path, DailyDirectory: DefaultDailyDirectory}

	s, err := Parse("set,08:00")
	require.NoError(t, err)

	found, err := c.UpdateDaily(s.Resolve(nil))
	require.NoError(t, err)
	assert.True(t, found)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "00 08\t* * *\troot\ttest -x /usr/sbin/anacron || ( cd / && run-parts --report /etc/cron.daily )")
	assert.Contains(t, string(data), "47 6\t* * 7\troot")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	// unset restores the distribution default
	found, err = c.UpdateDaily(Unset{}.Resolve(nil))
	require.NoError(t, err)
	assert.True(t, found)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "25 06\t* * *\troot")
}

func TestCrontab_UpdateDaily_Missing(t *testing.T) {
	c := Crontab{Path: filepath.Join(t.TempDir(), "crontab"), DailyDirectory: DefaultDailyDirectory}

	_, err := c.UpdateDaily(DefaultDaily)

	assert.Error(t, err)
}
