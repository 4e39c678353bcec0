package dto

import "time"

// CreateProductRequest entrada para criar um produto.
// Unit deve ser SC, KG ou FARDO; define a unidade nativa dos saldos.
type CreateProductRequest struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	NCM  string `json:"ncm"`
}

// UpdateProductRequest entrada para atualizar um produto (campos opcionais).
// Unit não é alterável: mudaria retroativamente a conversão de todo o histórico.
type UpdateProductRequest struct {
	SKU  *string `json:"sku"`
	Name *string `json:"name"`
	NCM  *string `json:"ncm"`
}

// ProductResponse saída de um produto.
type ProductResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	SKU       string    `json:"sku,omitempty"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	NCM       string    `json:"ncm,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListResponse listagem paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
