package session

// Store guarda la sesión activa.
// Transiciones: login exitoso => Save; logout => Clear; arranque del proceso
// => el adapter durable rehidrata lo que haya persistido.
// La expiración del token no se vigila acá: se descubre con el 401 siguiente.
type Store interface {
	// Current devuelve la sesión vigente (zero value si no hay).
	Current() Session

	// Save reemplaza la sesión completa y la persiste si el adapter es durable.
	Save(s Session) error

	// Clear borra la sesión en memoria y en el storage durable.
	Clear() error
}
