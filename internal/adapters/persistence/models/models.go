package models

import (
	"encoding/json"
	"time"

	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Reference data
// ============================================================

// Role represents roles table. Permissions is a JSON object of named
// boolean capabilities, e.g. {"approve_rosters": true}.
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Permissions string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// PermissionMap decodes the permissions JSON. An empty or malformed
// document yields an empty map (no capabilities).
func (r *Role) PermissionMap() map[string]bool {
	perms := map[string]bool{}
	if r.Permissions == "" {
		return perms
	}
	_ = json.Unmarshal([]byte(r.Permissions), &perms)
	return perms
}

// RoleResponse DTO
type RoleResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Permissions map[string]bool `json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r *Role) ToResponse() *RoleResponse {
	return &RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: r.PermissionMap(),
		CreatedAt:   r.CreatedAt,
	}
}

// AreaOfResponsibility represents areas_of_responsibility table
type AreaOfResponsibility struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AreaOfResponsibility) TableName() string {
	return "areas_of_responsibility"
}

// Skill represents skills table
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Skill) TableName() string {
	return "skills"
}

// ShiftType represents shift_types table. Start and end are "HH:MM" wall
// clock times and may wrap past midnight; Hours is authoritative and is
// never derived from the end-start difference.
type ShiftType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:7;default:'#3498db'" json:"color"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ShiftType) TableName() string {
	return "shift_types"
}

// ============================================================
// Employees
// ============================================================

// Employee represents employees table
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GoogleID   string    `gorm:"uniqueIndex;size:100;not null" json:"google_id"`
	Email      string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Surname    string    `gorm:"size:100;not null" json:"surname"`
	EmployeeNo *string   `gorm:"uniqueIndex;size:50" json:"employee_no"`
	ContactNo  string    `gorm:"size:20" json:"contact_no"`
	RoleID     uint      `gorm:"not null" json:"role_id"`
	AreaID     *uint     `json:"area_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Role   *Role                 `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Area   *AreaOfResponsibility `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	Skills []EmployeeSkill       `gorm:"foreignKey:EmployeeID" json:"skills,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeSkill is the employee<->skill association with a proficiency
// level carried on the link.
type EmployeeSkill struct {
	EmployeeID  uint      `gorm:"primaryKey" json:"employee_id"`
	SkillID     uint      `gorm:"primaryKey" json:"skill_id"`
	Proficiency string    `gorm:"size:20;default:'Beginner'" json:"proficiency"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

func (EmployeeSkill) TableName() string {
	return "employee_skills"
}

// EmployeeResponse DTO
type EmployeeResponse struct {
	ID         uint                  `json:"id"`
	GoogleID   string                `json:"google_id"`
	Email      string                `json:"email"`
	Name       string                `json:"name"`
	Surname    string                `json:"surname"`
	EmployeeNo *string               `json:"employee_no"`
	ContactNo  string                `json:"contact_no"`
	RoleID     uint                  `json:"role_id"`
	Role       *RoleResponse         `json:"role,omitempty"`
	AreaID     *uint                 `json:"area_id"`
	Area       *AreaOfResponsibility `json:"area,omitempty"`
	Skills     []EmployeeSkillInfo   `json:"skills"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// EmployeeSkillInfo is the flattened skill entry in employee responses.
type EmployeeSkillInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

func (e *Employee) ToResponse() *EmployeeResponse {
	resp := &EmployeeResponse{
		ID:         e.ID,
		GoogleID:   e.GoogleID,
		Email:      e.Email,
		Name:       e.Name,
		Surname:    e.Surname,
		EmployeeNo: e.EmployeeNo,
		ContactNo:  e.ContactNo,
		RoleID:     e.RoleID,
		AreaID:     e.AreaID,
		Skills:     make([]EmployeeSkillInfo, 0, len(e.Skills)),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}

	if e.Role != nil {
		resp.Role = e.Role.ToResponse()
	}
	if e.Area != nil {
		resp.Area = e.Area
	}
	for _, es := range e.Skills {
		if es.Skill == nil {
			continue
		}
		resp.Skills = append(resp.Skills, EmployeeSkillInfo{
			ID:          es.Skill.ID,
			Name:        es.Skill.Name,
			Proficiency: es.Proficiency,
		})
	}

	return resp
}

// EmployeeSummary is the denormalized employee block embedded in roster,
// timesheet and leave responses.
type EmployeeSummary struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	EmployeeNo *string `json:"employee_no"`
	Role       string  `json:"role,omitempty"`
	Area       string  `json:"area,omitempty"`
}

func (e *Employee) ToSummary() *EmployeeSummary {
	s := &EmployeeSummary{
		ID:         e.ID,
		Name:       e.Name,
		Surname:    e.Surname,
		EmployeeNo: e.EmployeeNo,
	}
	if e.Role != nil {
		s.Role = e.Role.Name
	}
	if e.Area != nil {
		s.Area = e.Area.Name
	}
	return s
}

// ApproverSummary is the denormalized approver block.
type ApproverSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ============================================================
// Approval lifecycle
// ============================================================

// Approval carries the shared pending/approved/rejected lifecycle state.
// It is embedded by RosterEntry, Timesheet and LeaveRequest; transitions
// go through Decide only.
type Approval struct {
	Status     domain.ApprovalStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedBy *uint                 `json:"approved_by"`
	ApprovedAt *time.Time            `json:"approved_at"`
}

// Decide applies an approve/reject action, stamping approver and time.
// Returns false without error when the record was already decided the
// same way (idempotent re-decide).
func (a *Approval) Decide(action domain.DecisionAction, approverID uint, now time.Time) (bool, error) {
	next, changed, err := domain.Transition(a.Status, action)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	a.Status = next
	a.ApprovedBy = &approverID
	a.ApprovedAt = &now
	return true, nil
}

// ============================================================
// Roster, timesheets, leave
// ============================================================

// DateFormat is the ISO calendar date layout used on the wire.
const DateFormat = "2006-01-02"

// RosterEntry represents roster_entries table. The composite unique index
// on (employee_id, date) is the authoritative no-double-booking guard; the
// service-level existence check only produces the friendly conflict error.
type RosterEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployeeID  uint      `gorm:"not null;uniqueIndex:idx_roster_employee_date" json:"employee_id"`
	ShiftTypeID uint      `gorm:"not null;index" json:"shift_type_id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_roster_employee_date" json:"date"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Approval
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Employee  *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID" json:"shift_type,omitempty"`
	Approver  *Employee  `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (RosterEntry) TableName() string {
	return "roster_entries"
}

// RosterEntryResponse DTO with denormalized employee/shift/approver blocks,
// assembled at read time from the foreign keys.
type RosterEntryResponse struct {
	ID          uint                  `json:"id"`
	EmployeeID  uint                  `json:"employee_id"`
	Employee    *EmployeeSummary      `json:"employee,omitempty"`
	ShiftTypeID uint                  `json:"shift_type_id"`
	ShiftType   *ShiftType            `json:"shift_type,omitempty"`
	Date        string                `json:"date"`
	Hours       float64               `json:"hours"`
	Status      domain.ApprovalStatus `json:"status"`
	ApprovedBy  *uint                 `json:"approved_by"`
	Approver    *ApproverSummary      `json:"approver,omitempty"`
	ApprovedAt  *time.Time            `json:"approved_at"`
	Notes       string                `json:"notes"`
	CreatedAt   time.Time             `json:"created_at"`
}

func (r *RosterEntry) ToResponse() *RosterEntryResponse {
	resp := &RosterEntryResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		ShiftTypeID: r.ShiftTypeID,
		Date:        r.Date.Format(DateFormat),
		Hours:       r.Hours,
		Status:      r.Status,
		ApprovedBy:  r.ApprovedBy,
		ApprovedAt:  r.ApprovedAt,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
	}

	if r.Employee != nil {
		resp.Employee = r.Employee.ToSummary()
	}
	if r.ShiftType != nil {
		resp.ShiftType = r.ShiftType
	}
	if r.Approver != nil {
		resp.Approver = &ApproverSummary{
			ID:      r.Approver.ID,
			Name:    r.Approver.Name,
			Surname: r.Approver.Surname,
		}
	}

	return resp
}

// Timesheet represents timesheets table: recorded actuals against an
// approved roster entry, same approval lifecycle.
type Timesheet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EmployeeID    uint      `gorm:"not null;index" json:"employee_id"`
	RosterEntryID uint      `gorm:"not null;index" json:"roster_entry_id"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`
	HoursWorked   float64   `gorm:"not null" json:"hours_worked"`
	Approval
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Employee    *Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	RosterEntry *RosterEntry `gorm:"foreignKey:RosterEntryID" json:"roster_entry,omitempty"`
	Approver    *Employee    `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// TimesheetResponse DTO
type TimesheetResponse struct {
	ID            uint                  `json:"id"`
	EmployeeID    uint                  `json:"employee_id"`
	Employee      *EmployeeSummary      `json:"employee,omitempty"`
	RosterEntryID uint                  `json:"roster_entry_id"`
	RosterEntry   *RosterEntryResponse  `json:"roster_entry,omitempty"`
	Date          string                `json:"date"`
	HoursWorked   float64               `json:"hours_worked"`
	Status        domain.ApprovalStatus `json:"status"`
	ApprovedBy    *uint                 `json:"approved_by"`
	Approver      *ApproverSummary      `json:"approver,omitempty"`
	ApprovedAt    *time.Time            `json:"approved_at"`
	Notes         string                `json:"notes"`
	CreatedAt     time.Time             `json:"created_at"`
}

func (t *Timesheet) ToResponse() *TimesheetResponse {
	resp := &TimesheetResponse{
		ID:            t.ID,
		EmployeeID:    t.EmployeeID,
		RosterEntryID: t.RosterEntryID,
		Date:          t.Date.Format(DateFormat),
		HoursWorked:   t.HoursWorked,
		Status:        t.Status,
		ApprovedBy:    t.ApprovedBy,
		ApprovedAt:    t.ApprovedAt,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}

	if t.Employee != nil {
		resp.Employee = t.Employee.ToSummary()
	}
	if t.RosterEntry != nil {
		resp.RosterEntry = t.RosterEntry.ToResponse()
	}
	if t.Approver != nil {
		resp.Approver = &ApproverSummary{
			ID:      t.Approver.ID,
			Name:    t.Approver.Name,
			Surname: t.Approver.Surname,
		}
	}

	return resp
}

// Leave types
const (
	LeaveTypePaid   = "paid"
	LeaveTypeUnpaid = "unpaid"
	LeaveTypeSick   = "sick"
)

// ValidLeaveType reports whether s is a known leave type.
func ValidLeaveType(s string) bool {
	return s == LeaveTypePaid || s == LeaveTypeUnpaid || s == LeaveTypeSick
}

// LeaveRequest represents leave_requests table. Overlap with roster
// entries is not prevented; availability reporting surfaces it instead.
type LeaveRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	LeaveType  string    `gorm:"size:20;not null" json:"leave_type"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	Days       int       `gorm:"not null" json:"days"`
	Reason     string    `gorm:"type:text" json:"reason"`
	Approval
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Approver *Employee `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveRequestResponse DTO
type LeaveRequestResponse struct {
	ID         uint                  `json:"id"`
	EmployeeID uint                  `json:"employee_id"`
	Employee   *EmployeeSummary      `json:"employee,omitempty"`
	LeaveType  string                `json:"leave_type"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	Days       int                   `json:"days"`
	Reason     string                `json:"reason"`
	Status     domain.ApprovalStatus `json:"status"`
	ApprovedBy *uint                 `json:"approved_by"`
	Approver   *ApproverSummary      `json:"approver,omitempty"`
	ApprovedAt *time.Time            `json:"approved_at"`
	CreatedAt  time.Time             `json:"created_at"`
}

func (l *LeaveRequest) ToResponse() *LeaveRequestResponse {
	resp := &LeaveRequestResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(DateFormat),
		EndDate:    l.EndDate.Format(DateFormat),
		Days:       l.Days,
		Reason:     l.Reason,
		Status:     l.Status,
		ApprovedBy: l.ApprovedBy,
		ApprovedAt: l.ApprovedAt,
		CreatedAt:  l.CreatedAt,
	}

	if l.Employee != nil {
		resp.Employee = l.Employee.ToSummary()
	}
	if l.Approver != nil {
		resp.Approver = &ApproverSummary{
			ID:      l.Approver.ID,
			Name:    l.Approver.Name,
			Surname: l.Approver.Surname,
		}
	}

	return resp
}

// ============================================================
// Auth
// ============================================================

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"index;not null" json:"employee_id"`
	TokenHash  string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt  *time.Time `gorm:"index" json:"revoked_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Reference data
		&Role{},
		&AreaOfResponsibility{},
		&Skill{},
		&ShiftType{},
		// Employees
		&Employee{},
		&EmployeeSkill{},
		// Scheduling
		&RosterEntry{},
		&Timesheet{},
		&LeaveRequest{},
		// Auth
		&RefreshToken{},
	)
}
