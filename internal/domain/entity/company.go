package entity

import "time"

// Company representa uma empresa/tenant do sistema. Todas as demais entidades
// são escopadas por CompanyID; nenhuma referência cruza empresas.
type Company struct {
	ID        string
	Name      string
	CNPJ      string // CNPJ com ou sem máscara
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
