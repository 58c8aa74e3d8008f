package app

// ─────────────────────────────────────────────────────────────
// Publish Handlers — deploys and republish schedules
// ─────────────────────────────────────────────────────────────

// PublishProject saves the live document, renders it, and deploys it.
// Returns the live URL.
func (a *App) PublishProject() (string, error) {
	if err := a.builders.Save(); err != nil {
		return "", err
	}
	return a.publish.Publish(a.ctx, a.builders.ProjectID())
}

// SetPublishSchedule sets a project's republish cron expression; empty
// clears the schedule.
func (a *App) SetPublishSchedule(projectID, expr string) error {
	return a.publish.SetSchedule(a.ctx, projectID, expr)
}

// ScheduledProjects returns the project ids with an active republish
// schedule.
func (a *App) ScheduledProjects() []string {
	return a.publish.ScheduledProjects()
}
