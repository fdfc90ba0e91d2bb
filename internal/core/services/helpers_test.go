package services

import (
	"testing"
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection keeps
// every query on the same memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// fixture is the seeded world most service tests run against: three roles,
// one area, two shift types and three employees.
type fixture struct {
	db *gorm.DB

	adminRole    *models.Role
	managerRole  *models.Role
	employeeRole *models.Role

	area    *models.AreaOfResponsibility
	morning *models.ShiftType
	night   *models.ShiftType

	admin   *models.Employee
	manager *models.Employee
	worker  *models.Employee
	worker2 *models.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db}

	f.adminRole = &models.Role{Name: "Admin", Permissions: `{"manage_employees": true, "view_all_rosters": true, "approve_rosters": true, "approve_timesheets": true, "view_analytics": true}`}
	f.managerRole = &models.Role{Name: "Manager", Permissions: `{"view_all_rosters": true, "approve_rosters": true, "approve_timesheets": true, "view_analytics": true}`}
	f.employeeRole = &models.Role{Name: "Employee", Permissions: `{}`}
	require.NoError(t, db.Create(f.adminRole).Error)
	require.NoError(t, db.Create(f.managerRole).Error)
	require.NoError(t, db.Create(f.employeeRole).Error)

	f.area = &models.AreaOfResponsibility{Name: "Front Desk"}
	require.NoError(t, db.Create(f.area).Error)

	f.morning = &models.ShiftType{Name: "Morning", StartTime: "06:00", EndTime: "14:00", Hours: 8, Color: "#3498db"}
	f.night = &models.ShiftType{Name: "Night", StartTime: "22:00", EndTime: "06:00", Hours: 8, Color: "#9b59b6"}
	require.NoError(t, db.Create(f.morning).Error)
	require.NoError(t, db.Create(f.night).Error)

	f.admin = f.createEmployee(t, "admin@company.co.za", "Anna", "Admin", f.adminRole)
	f.manager = f.createEmployee(t, "manager@company.co.za", "Mark", "Manager", f.managerRole)
	f.worker = f.createEmployee(t, "john.doe@company.co.za", "John", "Doe", f.employeeRole)
	f.worker2 = f.createEmployee(t, "jane.smith@company.co.za", "Jane", "Smith", f.employeeRole)

	return f
}

func (f *fixture) createEmployee(t *testing.T, email, name, surname string, role *models.Role) *models.Employee {
	t.Helper()
	e := &models.Employee{
		GoogleID: "google_" + email,
		Email:    email,
		Name:     name,
		Surname:  surname,
		RoleID:   role.ID,
		AreaID:   &f.area.ID,
	}
	require.NoError(t, f.db.Create(e).Error)
	return e
}

func principalFor(e *models.Employee, role *models.Role) *domain.Principal {
	return &domain.Principal{
		EmployeeID:  e.ID,
		Email:       e.Email,
		Role:        role.Name,
		Permissions: role.PermissionMap(),
	}
}

func (f *fixture) adminPrincipal() *domain.Principal {
	return principalFor(f.admin, f.adminRole)
}

func (f *fixture) managerPrincipal() *domain.Principal {
	return principalFor(f.manager, f.managerRole)
}

func (f *fixture) workerPrincipal() *domain.Principal {
	return principalFor(f.worker, f.employeeRole)
}

// fixedTime pins a service clock for deterministic decisions and defaults.
func fixedTime(value string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return t }
}
