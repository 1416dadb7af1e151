package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	memstore "pawpal-client/internal/adapters/sessionstore/memory"
	"pawpal-client/internal/gateway"
	"pawpal-client/internal/stubserver"
)

// Recorrido completo del gateway contra el stub backend.
func TestGateway_EndToEnd(t *testing.T) {
	ts := httptest.NewServer(stubserver.NewRouter(stubserver.Options{}))
	defer ts.Close()

	sessions := memstore.New()
	gw := newGateway(t, ts.URL, sessions)
	ctx := context.Background()

	// 1) Sin sesión, details da 401
	{
		_, err := gw.Users.Details(ctx)
		ge, ok := gateway.AsError(err)
		if !ok || !ge.IsStatus(http.StatusUnauthorized) {
			t.Fatalf("expected 401 before login, got %v", err)
		}
	}

	// 2) Registro
	if err := gw.Auth.Register(ctx, "Ana", "Paz", "ana@pawpal.dev"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// 3) Registro duplicado => conflicto
	{
		err := gw.Auth.Register(ctx, "Ana", "Paz", "ana@pawpal.dev")
		ge, ok := gateway.AsError(err)
		if !ok || !ge.IsStatus(http.StatusConflict) {
			t.Fatalf("expected 409 on duplicate register, got %v", err)
		}
	}

	// 4) Login con la contraseña inicial del stub
	sess, err := gw.Auth.Login(ctx, "ana@pawpal.dev", stubserver.InitialPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.HasToken() || sess.FirstName != "Ana" {
		t.Fatalf("unexpected session %+v", sess)
	}

	// 5) Perfil del usuario logueado
	{
		u, err := gw.Users.Details(ctx)
		if err != nil {
			t.Fatalf("details: %v", err)
		}
		if u.Email != "ana@pawpal.dev" || !u.IsNew {
			t.Fatalf("unexpected user %+v", u)
		}
	}

	// 6) Reset de contraseña y re-login con la nueva
	if err := gw.Users.ResetPassword(ctx, "supersecure1"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := gw.Auth.Login(ctx, "ana@pawpal.dev", "supersecure1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// 7) La contraseña vieja deja de servir
	{
		_, err := gw.Auth.Login(ctx, "ana@pawpal.dev", stubserver.InitialPassword)
		ge, ok := gateway.AsError(err)
		if !ok || !ge.IsStatus(http.StatusUnauthorized) {
			t.Fatalf("expected 401 with old password, got %v", err)
		}
		// el login fallido dejó la sesión limpia: re-logueamos
		if _, err := gw.Auth.Login(ctx, "ana@pawpal.dev", "supersecure1"); err != nil {
			t.Fatalf("re-login: %v", err)
		}
	}

	// 8) Sin mascotas: lista vacía, sin error
	{
		pets, err := gw.Pets.ListMine(ctx)
		if err != nil {
			t.Fatalf("list pets empty: %v", err)
		}
		if len(pets) != 0 {
			t.Fatalf("expected no pets, got %d", len(pets))
		}
	}

	// 9) Alta de mascota
	born := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)
	pet, err := gw.Pets.Add(ctx, gateway.PetInput{
		Name:        "Milo",
		IsMale:      true,
		DateOfBirth: born,
		Breed:       "beagle",
		Weight:      11.5,
		Type:        gateway.TypeDog,
	})
	if err != nil {
		t.Fatalf("add pet: %v", err)
	}
	if pet.ID == 0 || pet.Name != "Milo" {
		t.Fatalf("unexpected created pet %+v", pet)
	}

	// 10) GetByID dos veces: misma entidad
	{
		p1, err := gw.Pets.GetByID(ctx, pet.ID)
		if err != nil {
			t.Fatalf("get pet: %v", err)
		}
		p2, err := gw.Pets.GetByID(ctx, pet.ID)
		if err != nil {
			t.Fatalf("get pet again: %v", err)
		}
		if p1 != p2 {
			t.Fatalf("reads disagree: %+v vs %+v", p1, p2)
		}
	}

	// 11) Update de mascota
	{
		updated, err := gw.Pets.Update(ctx, pet.ID, gateway.PetInput{
			Name:        "Milo",
			IsMale:      true,
			DateOfBirth: born,
			Breed:       "beagle",
			Weight:      12.2,
			Type:        gateway.TypeDog,
		})
		if err != nil {
			t.Fatalf("update pet: %v", err)
		}
		if updated.Weight != 12.2 {
			t.Fatalf("expected weight 12.2, got %v", updated.Weight)
		}
	}

	// 12) Turno con defaults de duración y costo
	appt, err := gw.Appointments.Add(ctx, gateway.AppointmentInput{
		PetID: pet.ID,
		Date:  time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add appointment: %v", err)
	}
	if appt.Status != gateway.StatusScheduled {
		t.Fatalf("expected SCHEDULED, got %s", appt.Status)
	}
	if appt.DurationMinutes != 30 || appt.Cost != 25.0 {
		t.Fatalf("expected defaults 30/25.0, got %d/%v", appt.DurationMinutes, appt.Cost)
	}

	// 13) Lista de turnos
	{
		items, err := gw.Appointments.List(ctx)
		if err != nil {
			t.Fatalf("list appointments: %v", err)
		}
		if len(items) != 1 || items[0].ID != appt.ID {
			t.Fatalf("unexpected appointments %+v", items)
		}
		if !items[0].LocalDateTime.Time().Equal(time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)) {
			t.Fatalf("date round-trip broke: %v", items[0].LocalDateTime.Time())
		}
	}

	// 14) Turno para mascota ajena/inexistente => 400
	{
		_, err := gw.Appointments.Add(ctx, gateway.AppointmentInput{
			PetID: 9999,
			Date:  time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		})
		ge, ok := gateway.AsError(err)
		if !ok || !ge.IsStatus(http.StatusBadRequest) {
			t.Fatalf("expected 400 for foreign pet, got %v", err)
		}
	}

	// 15) Borrar turno y mascota
	if err := gw.Appointments.Delete(ctx, appt.ID); err != nil {
		t.Fatalf("delete appointment: %v", err)
	}
	if err := gw.Pets.Delete(ctx, pet.ID); err != nil {
		t.Fatalf("delete pet: %v", err)
	}

	// 16) Update sobre mascota borrada => 404 clasificado
	{
		_, err := gw.Pets.Update(ctx, pet.ID, gateway.PetInput{Name: "Ghost", Type: gateway.TypeDog})
		ge, ok := gateway.AsError(err)
		if !ok || !ge.IsStatus(http.StatusNotFound) {
			t.Fatalf("expected 404 updating deleted pet, got %v", err)
		}
	}

	// 17) Logout: la siguiente llamada sale sin token y da 401
	if err := gw.Auth.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	{
		_, err := gw.Users.Details(ctx)
		ge, ok := gateway.AsError(err)
		if !ok || !ge.IsStatus(http.StatusUnauthorized) {
			t.Fatalf("expected 401 after logout, got %v", err)
		}
	}
}
