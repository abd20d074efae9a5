package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
	"github.com/yurykabanov/logrotator/pkg/settings"
	"github.com/yurykabanov/logrotator/pkg/util"
)

const DefaultLogrotateDirectory = "/etc/logrotate.d"

type ConfigManagerConfig struct {
	// Directory with logrotate configuration files to rewrite
	Directory string

	// Shared settings file written by the hook handlers
	SettingsPath string

	// When set, Directory is zipped here before any file is rewritten
	SnapshotDirectory string
}

// ModifyReport summarizes one ModifyConfigs pass.
type ModifyReport struct {
	Total    int
	Modified []string
	Snapshot string
}

// ConfigManager rewrites every logrotate file of a directory so that the
// configured retention is kept.
type ConfigManager struct {
	logger logrus.FieldLogger

	config    ConfigManagerConfig
	overrides Overrides
	retention int
}

func NewConfigManager(
	logger logrus.FieldLogger,
	config ConfigManagerConfig,
	overrides Overrides,
	retention int,
) *ConfigManager {
	return &ConfigManager{
		logger:    logger,
		config:    config,
		overrides: overrides,
		retention: retention,
	}
}

func (m *ConfigManager) Retention() int {
	return m.retention
}

// ReadConfig loads the retention dumped by the hook handlers.
func (m *ConfigManager) ReadConfig() error {
	f, err := settings.Open(m.config.SettingsPath)
	if err != nil {
		return err
	}

	retention, err := f.RetentionDays()
	if err != nil {
		return err
	}

	m.retention = retention
	return nil
}

type pendingWrite struct {
	path    string
	perm    os.FileMode
	content string
}

// ModifyConfigs rewrites every file of the logrotate directory in place.
// Files already matching the policy are left untouched. A failure while
// writing leaves the files processed so far rewritten, which is fine since a
// rerun converges to the same result.
func (m *ConfigManager) ModifyConfigs(ctx context.Context) (ModifyReport, error) {
	var report ModifyReport

	logger := appcontext.LoggerFromContext(m.logger, ctx)

	entries, err := os.ReadDir(m.config.Directory)
	if err != nil {
		return report, errors.Wrap(err, "Unable to list logrotate directory")
	}

	var pending []pendingWrite

	for _, entry := range entries {
		path := filepath.Join(m.config.Directory, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			return report, errors.Wrapf(err, "Unable to stat %s", path)
		}
		if info.IsDir() {
			continue
		}

		report.Total++

		data, err := os.ReadFile(path)
		if err != nil {
			return report, errors.Wrapf(err, "Unable to read %s", path)
		}

		fileLogger := appcontext.LoggerFromContext(m.logger, appcontext.WithFile(ctx, path))

		if m.overrides.Has(path) {
			fileLogger.WithField("override", m.overrides.Settings(path).String()).Debug("Applying override")
		}

		content := ModifyHeader(m.ModifyContent(string(data), path))
		if content == string(data) {
			fileLogger.Debug("Logrotate file already up to date")
			continue
		}

		pending = append(pending, pendingWrite{path: path, perm: info.Mode().Perm(), content: content})
	}

	if len(pending) > 0 && m.config.SnapshotDirectory != "" {
		report.Snapshot, err = m.snapshot()
		if err != nil {
			return report, err
		}
		logger.WithField("snapshot", report.Snapshot).Info("Saved snapshot of logrotate directory")
	}

	for _, w := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err = os.WriteFile(w.path, []byte(w.content), w.perm)
		if err != nil {
			return report, errors.Wrapf(err, "Unable to write %s", w.path)
		}

		report.Modified = append(report.Modified, w.path)
		appcontext.LoggerFromContext(m.logger, appcontext.WithFile(ctx, w.path)).Info("Rewrote logrotate file")
	}

	return report, nil
}

func (m *ConfigManager) snapshot() (string, error) {
	err := os.MkdirAll(m.config.SnapshotDirectory, 0700)
	if err != nil {
		return "", errors.Wrap(err, "Unable to create snapshot directory")
	}

	name := fmt.Sprintf("%s-%s.zip", filepath.Base(m.config.Directory), time.Now().UTC().Format("20060102T150405.000000000Z"))
	outfile := filepath.Join(m.config.SnapshotDirectory, name)

	err = util.ZipDirectory(outfile, m.config.Directory)
	if err != nil {
		return "", errors.Wrap(err, "Unable to snapshot logrotate directory")
	}

	return outfile, nil
}

// ModifyContent rewrites the rotate directive of every entry of a logrotate
// file, then applies the size or interval override of filePath if any.
func (m *ConfigManager) ModifyContent(content, filePath string) string {
	entries := SplitEntries(content)

	overridden := m.overrides.Has(filePath)
	override := m.overrides.Settings(filePath)

	results := make([]string, 0, len(entries))
	for _, entry := range entries {
		var count int

		if overridden {
			// an override without rotate keeps the entry as authored
			if override.Rotate == nil {
				results = append(results, entry)
				continue
			}
			count = *override.Rotate
		} else {
			count = CalculateCount(entry, m.retention)
		}

		results = append(results, SetRotate(entry, count))
	}

	result := strings.Join(results, "\n") + "\n"

	switch {
	case override.Size != nil:
		result = ReplaceSize(result, *override.Size)
	case override.Interval != nil:
		result = ReplaceInterval(result, *override.Interval)
	}

	return result
}
