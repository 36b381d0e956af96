package client

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrEmptyPhone   = errors.New("telefone não pode ser vazio")
	ErrInvalidPhone = errors.New("telefone inválido")
)

// O telefone é a chave primária do cliente: dígitos, com prefixo
// internacional opcional.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Status representa o estado do cliente
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Client representa um cliente no sistema
type Client struct {
	Phone        string    `json:"phone"`        // Telefone (chave primária)
	Name         string    `json:"name"`         // Nome do Cliente
	Address      string    `json:"address"`      // Endereço
	Observations string    `json:"observations"` // Observações
	Status       Status    `json:"status"`       // Status do Cliente
	CreatedAt    time.Time `json:"created_at"`   // Data de Criação
	UpdatedAt    time.Time `json:"updated_at"`   // Data de Atualização
}

// NewClient cria um novo cliente
func NewClient(phone, name string) (*Client, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if phone == "" {
		return nil, ErrEmptyPhone
	}

	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	now := time.Now()
	return &Client{
		Phone:     phone,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se o cliente está ativo
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// Deactivate desativa o cliente
func (c *Client) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Activate ativa o cliente
func (c *Client) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Update atualiza os dados do cliente
func (c *Client) Update(name, address, observations string) error {
	if name == "" {
		return ErrEmptyName
	}

	c.Name = name
	c.Address = address
	c.Observations = observations
	c.UpdatedAt = time.Now()

	return nil
}
