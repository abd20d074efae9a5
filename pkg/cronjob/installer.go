package cronjob

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/schedule"
	"github.com/yurykabanov/logrotator/pkg/settings"
)

const (
	DefaultBaseDirectory = "/etc"
	DefaultJobName       = "logrotator"
)

type Config struct {
	// Directory holding the cron.<frequency> buckets
	BaseDirectory string

	// File name of the job inside a bucket
	JobName string

	// Shared settings file written by the hook handlers
	SettingsPath string

	Crontab        string
	DailyDirectory string

	// Binary invoked by the job and the config file it is given, if any
	Executable string
	ConfigFile string
}

// Installer places the job running the logrotate rewrite into the cron
// bucket matching the configured frequency.
type Installer struct {
	logger logrus.FieldLogger
	config Config
	rng    *rand.Rand

	enabled   bool
	frequency settings.Frequency
	directive string
}

func New(logger logrus.FieldLogger, config Config, rng *rand.Rand) *Installer {
	return &Installer{
		logger:    logger,
		config:    config,
		rng:       rng,
		frequency: settings.Daily,
		directive: string(schedule.KindUnset),
	}
}

// ReadConfig loads the cronjob settings dumped by the hook handlers.
func (i *Installer) ReadConfig() error {
	f, err := settings.Open(i.config.SettingsPath)
	if err != nil {
		return err
	}

	enabled, err := f.CronjobEnabled()
	if err != nil {
		return err
	}

	frequency, err := f.Frequency()
	if err != nil {
		return err
	}

	directive, err := f.DailySchedule()
	if err != nil {
		return err
	}

	i.enabled = enabled
	i.frequency = frequency
	i.directive = directive

	return nil
}

func (i *Installer) JobPath(frequency settings.Frequency) string {
	return filepath.Join(i.config.BaseDirectory, "cron."+string(frequency), i.config.JobName)
}

// InstallCronjob removes the job from every bucket, then installs it into the
// configured one when enabled. A disabled cronjob also removes the settings
// file.
func (i *Installer) InstallCronjob() error {
	logger := i.logger.WithField("frequency", string(i.frequency))

	for _, frequency := range settings.Frequencies {
		path := i.JobPath(frequency)

		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "Unable to remove cronjob %s", path)
		}
	}

	if !i.enabled {
		logger.Info("Cronjob disabled, removed job and settings")
		return settings.Remove(i.config.SettingsPath)
	}

	path := i.JobPath(i.frequency)

	err := os.WriteFile(path, []byte(i.script()), 0700)
	if err != nil {
		return errors.Wrapf(err, "Unable to write cronjob %s", path)
	}

	// WriteFile honors umask
	err = os.Chmod(path, 0700)
	if err != nil {
		return errors.Wrapf(err, "Unable to chmod cronjob %s", path)
	}

	logger.WithField("path", path).Info("Installed cronjob")

	s, err := schedule.Parse(i.directive)
	if err != nil {
		return err
	}

	if i.frequency != settings.Daily {
		return nil
	}

	crontab := schedule.Crontab{Path: i.config.Crontab, DailyDirectory: i.config.DailyDirectory}
	at := s.Resolve(i.rng)

	found, err := crontab.UpdateDaily(at)
	if err != nil {
		return err
	}

	if !found {
		logger.WithField("crontab", i.config.Crontab).Warn("No daily line found in crontab, schedule not applied")
		return nil
	}

	logger.WithFields(logrus.Fields{
		"schedule": string(s.Kind()),
		"at":       at.String(),
	}).Info("Applied daily schedule")

	return nil
}

func (i *Installer) script() string {
	var b strings.Builder

	b.WriteString("#!/bin/bash\n")
	b.WriteString("/usr/bin/sudo " + i.config.Executable)
	if i.config.ConfigFile != "" {
		b.WriteString(fmt.Sprintf(" --config %s", i.config.ConfigFile))
	}
	b.WriteString(" cron\n")

	return b.String()
}
