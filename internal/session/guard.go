package session

// Allow es el guard de rutas: un predicado puro sobre la foto de sesión.
// Una ruta restringida exige sesión iniciada; si además exige admin, el rol
// tiene que serlo. Se evalúa en memoria, sin tocar la red.
func Allow(s Session, requireAdmin bool) bool {
	if requireAdmin {
		return s.IsLoggedIn() && s.IsAdmin()
	}
	return s.IsLoggedIn()
}
