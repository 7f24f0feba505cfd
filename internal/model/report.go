package model

// UnassignedDepartment labels entries whose user has no department, or whose
// user is no longer present in the directory.
const UnassignedDepartment = "Sin Departamento"

// HourlyBucket is one clock hour of the hourly access report.
type HourlyBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// DepartmentCount is one row of the departmental access report.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}
