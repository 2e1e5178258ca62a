package role

// Role роль пользователя в системе
type Role int

const (
	Customer Role = iota // обычный клиент (арендатор серверов)
	Manager              // менеджер поддержки
	Admin                // администратор панели
)

func (r Role) String() string {
	switch r {
	case Customer:
		return "customer"
	case Manager:
		return "manager"
	case Admin:
		return "admin"
	}
	return "unknown"
}
