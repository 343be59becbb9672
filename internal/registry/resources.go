// Package registry declares the resource descriptors the whole API is
// generated from. Adding a resource here is enough to get its full route
// shape, search surface and validation.
package registry

import "abarto-backend/internal/domain"

var Products = domain.Resource{
	Name:     "products",
	Singular: "product",
	Table:    "products",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true, Unique: true},
		{Name: "description", Type: domain.FieldString},
		{Name: "category", Type: domain.FieldString},
		{Name: "price", Type: domain.FieldFloat, Required: true},
		{Name: "quantity", Type: domain.FieldInt, Required: true},
		{Name: "rating", Type: domain.FieldFloat},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "description", "category"},
	Ranges: []domain.RangeField{
		{Field: "price", MinParam: "minPrice", MaxParam: "maxPrice"},
		{Field: "quantity", MinParam: "minQuantity", MaxParam: "maxQuantity"},
		{Field: "rating", MinParam: "minRating", MaxParam: "maxRating"},
	},
	Timestamps: true,
}

var Employees = domain.Resource{
	Name:     "employees",
	Singular: "employee",
	Table:    "employees",
	Fields: []domain.Field{
		{Name: "first_name", Type: domain.FieldString, Required: true},
		{Name: "last_name", Type: domain.FieldString, Required: true},
		{Name: "email", Type: domain.FieldString, Unique: true},
		{Name: "phone", Type: domain.FieldString},
		{Name: "position", Type: domain.FieldString},
		{Name: "department", Type: domain.FieldString},
		{Name: "salary", Type: domain.FieldFloat},
		{Name: "hired_at", Type: domain.FieldTime},
	},
	DefaultSort:  "last_name",
	DefaultOrder: "asc",
	Searchable:   []string{"first_name", "last_name", "email", "position", "department"},
	Ranges: []domain.RangeField{
		{Field: "salary", MinParam: "minSalary", MaxParam: "maxSalary"},
		{Field: "hired_at", MinParam: "startHiredAt", MaxParam: "endHiredAt"},
	},
	Timestamps: true,
}

var RawMaterials = domain.Resource{
	Name:     "raw-materials",
	Singular: "raw material",
	Table:    "raw_materials",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true},
		{Name: "type", Type: domain.FieldString},
		{Name: "supplier", Type: domain.FieldString},
		{Name: "unit", Type: domain.FieldString},
		{Name: "quantity", Type: domain.FieldFloat, Required: true},
		{Name: "unit_cost", Type: domain.FieldFloat},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "type", "supplier"},
	Ranges: []domain.RangeField{
		{Field: "quantity", MinParam: "minQuantity", MaxParam: "maxQuantity"},
		{Field: "unit_cost", MinParam: "minUnitCost", MaxParam: "maxUnitCost"},
	},
	Timestamps: true,
}

var Chemicals = domain.Resource{
	Name:     "chemicals",
	Singular: "chemical",
	Table:    "chemicals",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true},
		{Name: "formula", Type: domain.FieldString},
		{Name: "hazard_class", Type: domain.FieldString},
		{Name: "storage_location", Type: domain.FieldString},
		{Name: "quantity", Type: domain.FieldFloat, Required: true},
		{Name: "expiry_date", Type: domain.FieldTime},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "formula", "hazard_class", "storage_location"},
	Ranges: []domain.RangeField{
		{Field: "quantity", MinParam: "minQuantity", MaxParam: "maxQuantity"},
		{Field: "expiry_date", MinParam: "startExpiry", MaxParam: "endExpiry"},
	},
	Timestamps: true,
}

var MachineryParts = domain.Resource{
	Name:     "machinery-parts",
	Singular: "machinery part",
	Table:    "machinery_parts",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true},
		{Name: "part_number", Type: domain.FieldString, Unique: true},
		// id of the machine this part belongs to; the machine record may be
		// gone, readers tolerate that
		{Name: "machine_id", Type: domain.FieldInt},
		{Name: "manufacturer", Type: domain.FieldString},
		{Name: "quantity", Type: domain.FieldInt, Required: true},
		{Name: "unit_price", Type: domain.FieldFloat},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "part_number", "manufacturer"},
	Ranges: []domain.RangeField{
		{Field: "quantity", MinParam: "minQuantity", MaxParam: "maxQuantity"},
		{Field: "unit_price", MinParam: "minUnitPrice", MaxParam: "maxUnitPrice"},
	},
	Timestamps: true,
}

var SafetyEquipment = domain.Resource{
	Name:     "safety-equipment",
	Singular: "safety equipment",
	Table:    "safety_equipment",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true},
		{Name: "type", Type: domain.FieldString},
		{Name: "certification", Type: domain.FieldString},
		{Name: "location", Type: domain.FieldString},
		{Name: "quantity", Type: domain.FieldInt, Required: true},
		{Name: "last_inspection", Type: domain.FieldTime},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "type", "certification", "location"},
	Ranges: []domain.RangeField{
		{Field: "quantity", MinParam: "minQuantity", MaxParam: "maxQuantity"},
		{Field: "last_inspection", MinParam: "startInspection", MaxParam: "endInspection"},
	},
	Timestamps: true,
}

var IndustrialSupplies = domain.Resource{
	Name:     "industrial-supplies",
	Singular: "industrial supply",
	Table:    "industrial_supplies",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true},
		{Name: "supplier_name", Type: domain.FieldString},
		{Name: "contact_email", Type: domain.FieldString},
		{Name: "category", Type: domain.FieldString},
		{Name: "unit_price", Type: domain.FieldFloat},
		{Name: "stock", Type: domain.FieldInt, Required: true},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "supplier_name", "category"},
	Ranges: []domain.RangeField{
		{Field: "unit_price", MinParam: "minUnitPrice", MaxParam: "maxUnitPrice"},
		{Field: "stock", MinParam: "minStock", MaxParam: "maxStock"},
	},
	Timestamps: true,
}

var WholesaleOrders = domain.Resource{
	Name:     "wholesale-orders",
	Singular: "wholesale order",
	Table:    "wholesale_orders",
	Fields: []domain.Field{
		{Name: "customer_name", Type: domain.FieldString, Required: true},
		{Name: "status", Type: domain.FieldString},
		// list of {product_id, quantity, unit_price}; product ids are plain
		// references, never transactionally enforced
		{Name: "items", Type: domain.FieldJSON, Required: true},
		{Name: "shipping_address", Type: domain.FieldJSON},
		{Name: "total_amount", Type: domain.FieldFloat},
		{Name: "ordered_at", Type: domain.FieldTime},
	},
	DefaultSort:  "ordered_at",
	DefaultOrder: "desc",
	Searchable:   []string{"customer_name", "status"},
	Ranges: []domain.RangeField{
		{Field: "total_amount", MinParam: "minTotal", MaxParam: "maxTotal"},
		{Field: "ordered_at", MinParam: "startOrdered", MaxParam: "endOrdered"},
	},
	Timestamps: true,
}

var SecurityLogs = domain.Resource{
	Name:     "security-logs",
	Singular: "security log",
	Table:    "security_logs",
	Fields: []domain.Field{
		{Name: "event", Type: domain.FieldString, Required: true},
		{Name: "severity", Type: domain.FieldString},
		{Name: "actor", Type: domain.FieldString},
		{Name: "source", Type: domain.FieldString},
		{Name: "details", Type: domain.FieldJSON},
		{Name: "timestamp", Type: domain.FieldTime, Required: true},
	},
	DefaultSort:  "timestamp",
	DefaultOrder: "desc",
	Searchable:   []string{"event", "severity", "actor", "source"},
	Ranges: []domain.RangeField{
		{Field: "timestamp", MinParam: "startTime", MaxParam: "endTime"},
	},
	MaxLimit:   200,
	Timestamps: true,
	AppendOnly: true,
}

var Reports = domain.Resource{
	Name:     "reports",
	Singular: "report",
	Table:    "reports",
	Fields: []domain.Field{
		{Name: "title", Type: domain.FieldString, Required: true},
		{Name: "type", Type: domain.FieldString},
		{Name: "author", Type: domain.FieldString},
		{Name: "summary", Type: domain.FieldString},
		{Name: "content", Type: domain.FieldString},
		{Name: "period_start", Type: domain.FieldTime},
		{Name: "period_end", Type: domain.FieldTime},
	},
	DefaultSort:  "title",
	DefaultOrder: "asc",
	Searchable:   []string{"title", "type", "author", "summary"},
	Ranges: []domain.RangeField{
		{Field: "period_start", MinParam: "startPeriod", MaxParam: "endPeriod"},
	},
	Timestamps: true,
}

var Admins = domain.Resource{
	Name:     "admins",
	Singular: "admin",
	Table:    "admins",
	Fields: []domain.Field{
		{Name: "first_name", Type: domain.FieldString, Required: true},
		{Name: "last_name", Type: domain.FieldString, Required: true},
		{Name: "email", Type: domain.FieldString, Required: true, Unique: true},
		{Name: "phone", Type: domain.FieldString},
		{Name: "position", Type: domain.FieldString},
		{Name: "role", Type: domain.FieldString},
		{Name: "password", Column: "password_hash", Type: domain.FieldString, Required: true, Secret: true},
	},
	DefaultSort:  "last_name",
	DefaultOrder: "asc",
	Searchable:   []string{"first_name", "last_name", "email", "position"},
	Timestamps:   true,
}

// All lists every resource in mount order.
var All = []domain.Resource{
	Products,
	Employees,
	RawMaterials,
	Chemicals,
	MachineryParts,
	SafetyEquipment,
	IndustrialSupplies,
	WholesaleOrders,
	SecurityLogs,
	Reports,
	Admins,
}

// ByName resolves a descriptor from its URL segment.
func ByName(name string) (domain.Resource, bool) {
	for _, r := range All {
		if r.Name == name {
			return r, true
		}
	}
	return domain.Resource{}, false
}
