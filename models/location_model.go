package models

import "gorm.io/gorm"

type Location struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique"`
	Zone      string `json:"zone"`
	Aisle     string `json:"aisle"`
	Shelf     string `json:"shelf"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
	DeletedBy int    `json:"deleted_by"`
}
