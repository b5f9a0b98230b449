package auth

const (
	PermRosterRead       = "roster.read"
	PermRosterWrite      = "roster.write"
	PermUsersManage      = "users.manage"
	PermPayrollRead      = "payroll.read"
	PermPayrollExport    = "payroll.export"
	PermPerformanceRead  = "performance.read"
	PermPerformanceWrite = "performance.write"
	PermAuditRead        = "audit.read"
)

var DefaultPermissions = []string{
	PermRosterRead,
	PermRosterWrite,
	PermUsersManage,
	PermPayrollRead,
	PermPayrollExport,
	PermPerformanceRead,
	PermPerformanceWrite,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleStaff: {
		PermRosterRead,
		PermPerformanceRead,
	},
	RoleManager: {
		PermRosterRead,
		PermRosterWrite,
		PermPayrollRead,
		PermPayrollExport,
		PermPerformanceRead,
		PermPerformanceWrite,
	},
	RoleAdmin: {
		PermRosterRead,
		PermRosterWrite,
		PermUsersManage,
		PermPayrollRead,
		PermPayrollExport,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermAuditRead,
	},
}
