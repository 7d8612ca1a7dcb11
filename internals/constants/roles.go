package constants

// Role user di aplikasi buku ekspedisi
const (
	RoleAdmin = "ADMIN"
	RoleStaf  = "STAF"
)

// Jenis aksi pada activity log
const (
	ActionCreate = "CREATE"
	ActionDelete = "DELETE"
	ActionExport = "EXPORT"
	ActionLogin  = "LOGIN"
)

// Jenis entity pada activity log
const (
	EntitySuratKeluar = "SURAT_KELUAR"
	EntityUser        = "USER"
)
