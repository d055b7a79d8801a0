package model

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "Admin"
	RolePatient = "Patient"
	RoleDoctor  = "Doctor"
)

type Role struct {
	gorm.Model
	ID   uint32 `gorm:"primary_key;auto_increment" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// SeedRoles ensures the fixed set of roles exists.
func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{Name: RoleAdmin},
		{Name: RolePatient},
		{Name: RoleDoctor},
	}

	for _, role := range roles {
		var existingRole Role
		err := db.Where("name = ?", role.Name).First(&existingRole).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// RoleIDByName looks up the numeric id for a seeded role name.
func RoleIDByName(db *gorm.DB, name string) (uint32, error) {
	var role Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		return 0, err
	}
	return role.ID, nil
}
