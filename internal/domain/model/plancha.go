package model

// Plancha is a forensic work station with up to two cameras.
type Plancha struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion,omitempty"`
	Active      bool    `json:"activa"`
	Camera1IP   *string `json:"camara1_ip,omitempty"`
	Camera1ID   *string `json:"camara1_id,omitempty"`
	Camera2IP   *string `json:"camara2_ip,omitempty"`
	Camera2ID   *string `json:"camara2_id,omitempty"`
	Assigned    bool    `json:"asignada"`
	CreatedAt   string  `json:"created_at"`
}

// PlanchaCreate is the body of a plancha creation call.
type PlanchaCreate struct {
	Name        string  `json:"nombre" validate:"required,max=100"`
	Description *string `json:"descripcion,omitempty" validate:"omitempty,max=2000"`
	Active      bool    `json:"activa"`
	Camera1IP   *string `json:"camara1_ip,omitempty" validate:"omitempty,ip"`
	Camera1ID   *string `json:"camara1_id,omitempty" validate:"omitempty,max=100"`
	Camera2IP   *string `json:"camara2_ip,omitempty" validate:"omitempty,ip"`
	Camera2ID   *string `json:"camara2_id,omitempty" validate:"omitempty,max=100"`
}

// PlanchaUpdate is the body of a plancha update call.
type PlanchaUpdate struct {
	Name        string  `json:"nombre" validate:"required,max=100"`
	Description *string `json:"descripcion,omitempty" validate:"omitempty,max=2000"`
	Active      bool    `json:"activa"`
	Camera1IP   *string `json:"camara1_ip,omitempty" validate:"omitempty,ip"`
	Camera1ID   *string `json:"camara1_id,omitempty" validate:"omitempty,max=100"`
	Camera2IP   *string `json:"camara2_ip,omitempty" validate:"omitempty,ip"`
	Camera2ID   *string `json:"camara2_id,omitempty" validate:"omitempty,max=100"`
}
