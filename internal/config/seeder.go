package config

import (
	"log"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedReferenceData seeds roles, areas, skills and shift types. Seeding is
// idempotent: existing rows (matched by name) are left alone.
func SeedReferenceData(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedAreas(db); err != nil {
		return err
	}
	if err := seedSkills(db); err != nil {
		return err
	}
	if err := seedShiftTypes(db); err != nil {
		return err
	}

	log.Println("✅ Reference data seeded successfully")
	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{
			Name:        "Admin",
			Permissions: `{"manage_employees": true, "manage_roles": true, "manage_shifts": true, "manage_areas": true, "manage_skills": true, "view_all_rosters": true, "approve_rosters": true, "approve_timesheets": true, "view_analytics": true, "export_data": true}`,
		},
		{
			Name:        "Manager",
			Permissions: `{"manage_employees": false, "manage_roles": false, "manage_shifts": false, "manage_areas": false, "manage_skills": false, "view_all_rosters": true, "approve_rosters": true, "approve_timesheets": true, "view_analytics": true, "export_data": true}`,
		},
		{
			Name:        "Employee",
			Permissions: `{"manage_employees": false, "manage_roles": false, "manage_shifts": false, "manage_areas": false, "manage_skills": false, "view_all_rosters": false, "approve_rosters": false, "approve_timesheets": false, "view_analytics": false, "export_data": false}`,
		},
		{
			Name:        "Guest",
			Permissions: `{"manage_employees": false, "manage_roles": false, "manage_shifts": false, "manage_areas": false, "manage_skills": false, "view_all_rosters": false, "approve_rosters": false, "approve_timesheets": false, "view_analytics": false, "export_data": false}`,
		},
	}

	for _, role := range roles {
		var existing models.Role
		if err := db.Where("name = ?", role.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&role).Error; err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

func seedAreas(db *gorm.DB) error {
	areas := []models.AreaOfResponsibility{
		{Name: "Front Desk", Description: "Reception and customer service"},
		{Name: "Kitchen", Description: "Food preparation and cooking"},
		{Name: "Housekeeping", Description: "Cleaning and maintenance"},
		{Name: "Security", Description: "Safety and security"},
		{Name: "Management", Description: "Administrative and management tasks"},
		{Name: "IT Support", Description: "Technical support and systems"},
		{Name: "Sales", Description: "Sales and marketing"},
		{Name: "Warehouse", Description: "Inventory and logistics"},
	}

	for _, area := range areas {
		var existing models.AreaOfResponsibility
		if err := db.Where("name = ?", area.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&area).Error; err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

func seedSkills(db *gorm.DB) error {
	skills := []models.Skill{
		{Name: "Customer Service", Description: "Dealing with customers professionally"},
		{Name: "Food Safety", Description: "Safe food handling certification"},
		{Name: "First Aid", Description: "Basic first aid and CPR"},
		{Name: "Computer Skills", Description: "Basic computer literacy"},
		{Name: "Languages", Description: "Multilingual communication"},
		{Name: "Leadership", Description: "Team leadership and management"},
		{Name: "Technical Support", Description: "IT troubleshooting"},
		{Name: "Sales Techniques", Description: "Sales and persuasion skills"},
		{Name: "Inventory Management", Description: "Stock control and logistics"},
		{Name: "Equipment Operation", Description: "Operating specialized equipment"},
	}

	for _, skill := range skills {
		var existing models.Skill
		if err := db.Where("name = ?", skill.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&skill).Error; err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

func seedShiftTypes(db *gorm.DB) error {
	shiftTypes := []models.ShiftType{
		{
			Name:        "Morning",
			StartTime:   "06:00",
			EndTime:     "14:00",
			Hours:       8.0,
			Description: "Morning shift",
			Color:       "#3498db",
		},
		{
			Name:        "Afternoon",
			StartTime:   "14:00",
			EndTime:     "22:00",
			Hours:       8.0,
			Description: "Afternoon shift",
			Color:       "#e74c3c",
		},
		{
			Name:        "Night",
			StartTime:   "22:00",
			EndTime:     "06:00",
			Hours:       8.0,
			Description: "Night shift",
			Color:       "#9b59b6",
		},
		{
			Name:        "Part Time Morning",
			StartTime:   "09:00",
			EndTime:     "13:00",
			Hours:       4.0,
			Description: "Part time morning shift",
			Color:       "#2ecc71",
		},
		{
			Name:        "Part Time Evening",
			StartTime:   "17:00",
			EndTime:     "21:00",
			Hours:       4.0,
			Description: "Part time evening shift",
			Color:       "#f39c12",
		},
	}

	for _, shiftType := range shiftTypes {
		var existing models.ShiftType
		if err := db.Where("name = ?", shiftType.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&shiftType).Error; err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

// SeedDevData seeds sample employees for development mode. Safe to run
// repeatedly; matched by employee number.
func SeedDevData(db *gorm.DB) error {
	var adminRole, managerRole, employeeRole models.Role
	if err := db.Where("name = ?", "Admin").First(&adminRole).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "Manager").First(&managerRole).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "Employee").First(&employeeRole).Error; err != nil {
		return err
	}

	var frontDesk, kitchen, management models.AreaOfResponsibility
	db.Where("name = ?", "Front Desk").First(&frontDesk)
	db.Where("name = ?", "Kitchen").First(&kitchen)
	db.Where("name = ?", "Management").First(&management)

	no := func(s string) *string { return &s }
	employees := []models.Employee{
		{
			GoogleID:   "google_admin_001",
			Email:      "admin@company.co.za",
			Name:       "Anna",
			Surname:    "Admin",
			EmployeeNo: no("EMP001"),
			ContactNo:  "+27-11-555-0001",
			RoleID:     adminRole.ID,
			AreaID:     &management.ID,
		},
		{
			GoogleID:   "google_manager_001",
			Email:      "manager@company.co.za",
			Name:       "Mark",
			Surname:    "Manager",
			EmployeeNo: no("EMP002"),
			ContactNo:  "+27-11-555-0002",
			RoleID:     managerRole.ID,
			AreaID:     &management.ID,
		},
		{
			GoogleID:   "google_employee_001",
			Email:      "john.doe@company.co.za",
			Name:       "John",
			Surname:    "Doe",
			EmployeeNo: no("EMP003"),
			ContactNo:  "+27-11-555-0003",
			RoleID:     employeeRole.ID,
			AreaID:     &frontDesk.ID,
		},
		{
			GoogleID:   "google_employee_002",
			Email:      "jane.smith@company.co.za",
			Name:       "Jane",
			Surname:    "Smith",
			EmployeeNo: no("EMP004"),
			ContactNo:  "+27-11-555-0004",
			RoleID:     employeeRole.ID,
			AreaID:     &kitchen.ID,
		},
	}

	for _, employee := range employees {
		var existing models.Employee
		if err := db.Where("employee_no = ?", employee.EmployeeNo).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&employee).Error; err != nil {
					return err
				}
				continue
			}
			return err
		}
	}

	log.Println("🌱 Development sample employees seeded")
	return nil
}
