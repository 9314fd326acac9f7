package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	SKU          string `json:"sku" gorm:"unique"`
	Barcode      string `json:"barcode" gorm:"index"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Uom          string `json:"uom" gorm:"default:'PCS'"`
	ReorderPoint int    `json:"reorder_point"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	CreatedBy    int    `json:"created_by"`
	UpdatedBy    int    `json:"updated_by"`
	DeletedBy    int    `json:"deleted_by"`
}
