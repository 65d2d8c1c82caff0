package model

// Qualification records a worker's proficiency for a single job role.
// Level runs from 1 (novice) to 5 (expert).
type Qualification struct {
	RoleID string
	Level  int
}

// Worker represents a schedulable field worker
type Worker struct {
	ID             string
	Name           string
	Email          string
	Schedule       WeeklySchedule
	Exceptions     []ScheduleException
	Qualifications []Qualification
	Rating         float64 // 0-5 star average
	HourlyRate     float64 // 0 means no rate on file
	IsActive       bool
}

// QualificationFor returns the worker's qualification for the given role
func (w *Worker) QualificationFor(roleID string) (Qualification, bool) {
	for _, q := range w.Qualifications {
		if q.RoleID == roleID {
			return q, true
		}
	}
	return Qualification{}, false
}

// JobRole represents a role workers can be qualified for
type JobRole struct {
	ID       string
	Name     string
	BaseRate float64 // hourly floor for the role, 0 means none
}

// CrewRoleCapability declares how many slots of a role a crew can staff.
// Level is the crew's declared proficiency for the role; 0 means undeclared,
// in which case the members' own qualification levels decide eligibility.
type CrewRoleCapability struct {
	RoleID   string
	Capacity int
	Level    int
}

// Crew represents a pre-formed team that is assigned as a unit
type Crew struct {
	ID           string
	Name         string
	LeadWorkerID string // Empty string if the crew has no standing lead
	MemberIDs    []string
	Capabilities []CrewRoleCapability
}

// CapabilityFor returns the crew's declared capability for the given role
func (c *Crew) CapabilityFor(roleID string) (CrewRoleCapability, bool) {
	for _, capability := range c.Capabilities {
		if capability.RoleID == roleID {
			return capability, true
		}
	}
	return CrewRoleCapability{}, false
}

// HasMember reports whether the worker belongs to the crew
func (c *Crew) HasMember(workerID string) bool {
	for _, id := range c.MemberIDs {
		if id == workerID {
			return true
		}
	}
	return false
}

// JobRequirement is one staffing line of a job: how many workers of a role,
// at what minimum proficiency level
type JobRequirement struct {
	RoleID   string
	Quantity int
	MinLevel int
}

// JobData represents a job to be staffed
type JobData struct {
	ID           string
	Title        string
	Location     string
	Window       TimeRange
	Requirements []JobRequirement
}

// TotalSlots returns the number of worker slots across all requirements
func (j *JobData) TotalSlots() int {
	total := 0
	for _, req := range j.Requirements {
		total += req.Quantity
	}
	return total
}

// Commitment represents time a worker is already booked on another job
type Commitment struct {
	ID       string
	WorkerID string
	JobID    string
	Window   TimeRange
	Note     string
}
