package alert

import "sync"

// Severity del mensaje publicado. Mismos cuatro niveles que la UI.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Message es el contenido del slot.
type Message struct {
	Text     string
	Severity Severity
}

// Channel es el punto de publicación de resultados hacia la UI.
// Es un slot único, NO una cola: un Publish antes del Dismiss anterior
// pisa el mensaje. Sin backlog ni prioridades, a propósito.
type Channel struct {
	mu   sync.Mutex
	open bool
	msg  Message
	subs []func(Message)
}

func NewChannel() *Channel {
	return &Channel{}
}

// Publish deja msg en el slot y lo abre. Notifica a los suscriptores.
// Severity vacía cuenta como info.
func (c *Channel) Publish(text string, sev Severity) {
	if sev == "" {
		sev = SeverityInfo
	}

	c.mu.Lock()
	c.msg = Message{Text: text, Severity: sev}
	c.open = true
	subs := c.subs
	m := c.msg
	c.mu.Unlock()

	// callbacks fuera del lock: un suscriptor puede volver a publicar
	for _, fn := range subs {
		fn(m)
	}
}

// Dismiss cierra el slot. El mensaje queda pero Current reporta cerrado.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

// Current devuelve el mensaje vigente y si el slot está abierto.
func (c *Channel) Current() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msg, c.open
}

// Subscribe registra un callback para cada Publish.
// No hay unsubscribe: los suscriptores viven lo que vive el canal.
func (c *Channel) Subscribe(fn func(Message)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}
