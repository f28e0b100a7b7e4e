package services

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/metrics"
	"errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"sync"
)

// Janitor periodically recreates missing hidden folders in every registered
// project and refreshes the project indexes.
type Janitor struct {
	projectService ProjectService
	configuration  *config.Configuration
	logService     LogService
	cleaning       bool
	mutex          sync.Mutex
	cron           *cron.Cron
}

func NewJanitorService(
	projectService ProjectService,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		projectService: projectService,
		logService:     logService,
		cleaning:       false,
		mutex:          sync.Mutex{},
		configuration:  configuration,
		cron:           cron.New(),
	}
}

func (j *Janitor) ForceStartCleanCycle() error {
	if !j.begin() {
		return errors.New("cleaning is in progress")
	}
	go func() {
		defer j.end()
		j.startClean(true)
	}()
	return nil
}

// RunCleanCycle runs one cycle in the calling goroutine.
func (j *Janitor) RunCleanCycle() error {
	if !j.begin() {
		return errors.New("cleaning is in progress")
	}
	defer j.end()
	return j.startClean(true)
}

func (j *Janitor) StartCleanCycle() error {
	j.logService.Log.Debug("starting cleaning job")
	cronSchedule := j.configuration.Server.CleanConfig.Schedule
	_, err := j.cron.AddFunc(cronSchedule, func() {
		if !j.begin() {
			return
		}
		defer j.end()
		_ = j.startClean(false)
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to start cleaning job")
		return err
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) StopClean() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "stopped",
	}).Info("Janitor clean stopped")
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) begin() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.cleaning {
		return false
	}
	j.cleaning = true
	return true
}

func (j *Janitor) end() {
	j.mutex.Lock()
	j.cleaning = false
	j.mutex.Unlock()
}

func (j *Janitor) startClean(forced bool) error {
	logFields := logrus.Fields{
		"job":    "clean",
		"status": "start",
		"cron":   j.configuration.Server.CleanConfig.Schedule,
	}
	if forced {
		logFields = logrus.Fields{
			"job":    "clean",
			"status": "forced",
		}
	}
	projects, err := j.projectService.GetProjects()
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "clean",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to list projects")
		metrics.RecordJanitorRun(forced, false)
		return err
	}
	j.logService.Log.WithFields(logFields).Debugf("Checking %d projects", len(projects))

	var errs []error
	repaired := 0
	for _, project := range projects {
		created, err := j.projectService.RepairProject(project.ID)
		repaired += len(created)
		if err != nil {
			errs = append(errs, err)
			j.logService.Log.WithFields(logrus.Fields{
				"job":     "clean",
				"status":  "error",
				"project": project.Name,
				"path":    project.Path,
				"error":   err.Error(),
			}).Error("Failed to repair project")
			continue
		}
		if len(created) > 0 {
			j.logService.Log.WithFields(logrus.Fields{
				"job":     "clean",
				"project": project.Name,
				"count":   len(created),
			}).Info("hidden folders restored")
		}
	}
	metrics.RecordJanitorRun(forced, len(errs) == 0)
	j.logService.Log.WithFields(logrus.Fields{
		"job":      "clean",
		"status":   "success",
		"projects": len(projects),
		"count":    repaired,
	}).Info("cleaning job finished")
	return errors.Join(errs...)
}
