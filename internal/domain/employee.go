package domain

// Employee maps to the employees table. Only read by this service: identity
// and role classification come from the external auth system.
type Employee struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Role      string `db:"role"` // "Administrador", "Quimico Farmaceutico", "Auxiliar de Laboratorio", ...
}

func (e *Employee) DisplayName() string {
	if e == nil {
		return ""
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
