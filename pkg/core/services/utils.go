package services

import (
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// convertWorker assembles a model worker from its storage rows
func convertWorker(row db.Worker, schedules []db.DaySchedule, exceptions []db.ScheduleException, qualifications []db.WorkerQualification) model.Worker {
	return model.Worker{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		Schedule:       convertDaySchedules(schedules),
		Exceptions:     convertExceptions(exceptions),
		Qualifications: convertQualifications(qualifications),
		Rating:         row.Rating,
		HourlyRate:     row.HourlyRate,
		IsActive:       row.IsActive,
	}
}

// convertDaySchedules folds weekday rows into a weekly schedule. Missing
// weekdays stay unavailable.
func convertDaySchedules(rows []db.DaySchedule) model.WeeklySchedule {
	var ws model.WeeklySchedule
	for _, row := range rows {
		day := model.Weekday(row.Weekday)
		if !day.IsValid() {
			continue
		}
		ws[day] = model.DaySchedule{
			Available:    row.Available,
			Start:        minutesToTimeOfDay(row.StartMinutes),
			End:          minutesToTimeOfDay(row.EndMinutes),
			BreakMinutes: row.BreakMinutes,
		}
	}
	return ws
}

func convertExceptions(rows []db.ScheduleException) []model.ScheduleException {
	if len(rows) == 0 {
		return nil
	}
	exceptions := make([]model.ScheduleException, len(rows))
	for i, row := range rows {
		exceptions[i] = convertException(row)
	}
	return exceptions
}

func convertException(row db.ScheduleException) model.ScheduleException {
	return model.ScheduleException{
		ID:        row.ID,
		WorkerID:  row.WorkerID,
		Type:      model.ExceptionType(row.Type),
		Title:     row.Title,
		StartDate: model.DateOf(row.StartDate),
		EndDate:   model.DateOf(row.EndDate),
		FullDay:   row.FullDay,
		StartTime: minutesToTimeOfDay(row.StartMinutes),
		EndTime:   minutesToTimeOfDay(row.EndMinutes),
		Status:    model.ExceptionStatus(row.Status),
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
	}
}

// exceptionRow flattens a model exception into its storage row
func exceptionRow(ex model.ScheduleException) db.ScheduleException {
	return db.ScheduleException{
		ID:           ex.ID,
		WorkerID:     ex.WorkerID,
		Type:         string(ex.Type),
		Title:        ex.Title,
		StartDate:    ex.StartDate,
		EndDate:      ex.EndDate,
		FullDay:      ex.FullDay,
		StartMinutes: ex.StartTime.Minutes(),
		EndMinutes:   ex.EndTime.Minutes(),
		Status:       string(ex.Status),
		Notes:        ex.Notes,
		CreatedAt:    ex.CreatedAt,
	}
}

func convertQualifications(rows []db.WorkerQualification) []model.Qualification {
	if len(rows) == 0 {
		return nil
	}
	qualifications := make([]model.Qualification, len(rows))
	for i, row := range rows {
		qualifications[i] = model.Qualification{RoleID: row.RoleID, Level: row.Level}
	}
	return qualifications
}

func convertCommitments(rows []db.Commitment) []model.Commitment {
	if len(rows) == 0 {
		return nil
	}
	commitments := make([]model.Commitment, len(rows))
	for i, row := range rows {
		commitments[i] = model.Commitment{
			ID:       row.ID,
			WorkerID: row.WorkerID,
			JobID:    row.JobID,
			Window:   model.TimeRange{Start: row.StartAt, End: row.EndAt},
			Note:     row.Note,
		}
	}
	return commitments
}

// convertCrews assembles model crews from the crew, membership and
// capability rows
func convertCrews(crews []db.Crew, members []db.CrewMember, capabilities []db.CrewCapability) []model.Crew {
	membersByCrew := make(map[string][]string)
	for _, m := range members {
		membersByCrew[m.CrewID] = append(membersByCrew[m.CrewID], m.WorkerID)
	}

	capabilitiesByCrew := make(map[string][]model.CrewRoleCapability)
	for _, c := range capabilities {
		capabilitiesByCrew[c.CrewID] = append(capabilitiesByCrew[c.CrewID], model.CrewRoleCapability{
			RoleID:   c.RoleID,
			Capacity: c.Capacity,
			Level:    c.Level,
		})
	}

	converted := make([]model.Crew, len(crews))
	for i, crew := range crews {
		converted[i] = model.Crew{
			ID:           crew.ID,
			Name:         crew.Name,
			LeadWorkerID: crew.LeadWorkerID,
			MemberIDs:    membersByCrew[crew.ID],
			Capabilities: capabilitiesByCrew[crew.ID],
		}
	}
	return converted
}

// scheduleRows flattens a weekly schedule into its weekday rows
func scheduleRows(workerID string, ws model.WeeklySchedule) []db.DaySchedule {
	rows := make([]db.DaySchedule, 0, 7)
	for day := model.Monday; day <= model.Sunday; day++ {
		d := ws.Day(day)
		rows = append(rows, db.DaySchedule{
			WorkerID:     workerID,
			Weekday:      int(day),
			Available:    d.Available,
			StartMinutes: d.Start.Minutes(),
			EndMinutes:   d.End.Minutes(),
			BreakMinutes: d.BreakMinutes,
		})
	}
	return rows
}

func minutesToTimeOfDay(minutes int) model.TimeOfDay {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= model.MinutesPerDay {
		minutes = model.MinutesPerDay - 1
	}
	return model.TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}
}
