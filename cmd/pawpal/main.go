package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	filestore "pawpal-client/internal/adapters/sessionstore/file"
	"pawpal-client/internal/alert"
	"pawpal-client/internal/gateway"
	"pawpal-client/internal/platform/logger"
)

// pawpal es el cliente de línea de comandos: la misma capa de datos que usa
// la UI web, con el alert channel impreso en stderr.

const usage = `usage: pawpal <command> [args]

commands:
  register <first> <last> <email>
  login <email> <password>
  logout
  whoami
  profile
  reset-password <new-password>
  pets list
  pets add <name> <type> <breed> <weight>
  pets get <id>
  pets delete <id>
  appointments list
  appointments add <pet-id> <yyyy-mm-ddThh:mm>
  appointments delete <id>
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	sessionPath, err := filestore.DefaultPath()
	if err != nil {
		return err
	}
	sessions, err := filestore.New(sessionPath)
	if err != nil {
		return err
	}

	alerts := alert.NewChannel()
	alerts.Subscribe(func(m alert.Message) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", m.Severity, m.Text)
	})

	gw, err := gateway.New(gateway.MustLoadConfig(), sessions, logger.NewFromEnv())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "register":
		return cmdRegister(ctx, gw, alerts, args[1:])
	case "login":
		return cmdLogin(ctx, gw, alerts, args[1:])
	case "logout":
		if err := gw.Auth.Logout(); err != nil {
			return err
		}
		alerts.Publish("Logged out.", alert.SeverityInfo)
		return nil
	case "whoami":
		return cmdWhoami(gw)
	case "profile":
		return cmdProfile(ctx, gw, alerts)
	case "reset-password":
		return cmdResetPassword(ctx, gw, alerts, args[1:])
	case "pets":
		return cmdPets(ctx, gw, alerts, args[1:])
	case "appointments":
		return cmdAppointments(ctx, gw, alerts, args[1:])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// publishOutcome traduce el error clasificado al alert channel, como hace la UI.
func publishOutcome(alerts *alert.Channel, err error) error {
	if ge, ok := gateway.AsError(err); ok {
		alerts.Publish(ge.Message, alert.SeverityError)
	}
	return err
}

func cmdRegister(ctx context.Context, gw *gateway.Gateway, alerts *alert.Channel, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("register needs <first> <last> <email>")
	}
	if err := gw.Auth.Register(ctx, args[0], args[1], args[2]); err != nil {
		return publishOutcome(alerts, err)
	}
	alerts.Publish("Account created. Check your email for the initial password.", alert.SeveritySuccess)
	return nil
}

func cmdLogin(ctx context.Context, gw *gateway.Gateway, alerts *alert.Channel, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("login needs <email> <password>")
	}
	sess, err := gw.Auth.Login(ctx, args[0], args[1])
	if err != nil {
		return publishOutcome(alerts, err)
	}
	alerts.Publish(fmt.Sprintf("Welcome back, %s!", sess.FirstName), alert.SeveritySuccess)
	return nil
}

func cmdWhoami(gw *gateway.Gateway) error {
	sess := gw.Session()
	if !sess.HasToken() {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s %s\n", sess.FirstName, sess.LastName)
	return nil
}

func cmdProfile(ctx context.Context, gw *gateway.Gateway, alerts *alert.Channel) error {
	u, err := gw.Users.Details(ctx)
	if err != nil {
		return publishOutcome(alerts, err)
	}
	fmt.Printf("#%d %s %s <%s> roles=%v\n", u.ID, u.FirstName, u.LastName, u.Email, u.Roles)
	return nil
}

func cmdResetPassword(ctx context.Context, gw *gateway.Gateway, alerts *alert.Channel, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("reset-password needs <new-password>")
	}
	if err := gw.Users.ResetPassword(ctx, args[0]); err != nil {
		return publishOutcome(alerts, err)
	}
	alerts.Publish("Password updated.", alert.SeveritySuccess)
	return nil
}

func cmdPets(ctx context.Context, gw *gateway.Gateway, alerts *alert.Channel, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("pets needs a subcommand")
	}

	switch args[0] {
	case "list":
		pets, err := gw.Pets.ListMine(ctx)
		if err != nil {
			return publishOutcome(alerts, err)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBREED\tWEIGHT")
		for _, p := range pets {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Type, p.Breed, p.Weight)
		}
		return tw.Flush()

	case "add":
		if len(args) != 5 {
			return fmt.Errorf("pets add needs <name> <type> <breed> <weight>")
		}
		weight, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[4])
		}
		p, err := gw.Pets.Add(ctx, gateway.PetInput{
			Name:   args[1],
			Type:   gateway.AnimalType(args[2]),
			Breed:  args[3],
			Weight: weight,
		})
		if err != nil {
			return publishOutcome(alerts, err)
		}
		alerts.Publish(fmt.Sprintf("%s added with id %d.", p.Name, p.ID), alert.SeveritySuccess)
		return nil

	case "get":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		p, err := gw.Pets.GetByID(ctx, id)
		if err != nil {
			return publishOutcome(alerts, err)
		}
		fmt.Printf("#%d %s (%s, %s) %.1fkg\n", p.ID, p.Name, p.Type, p.Breed, p.Weight)
		return nil

	case "delete":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := gw.Pets.Delete(ctx, id); err != nil {
			return publishOutcome(alerts, err)
		}
		alerts.Publish("Pet deleted.", alert.SeveritySuccess)
		return nil

	default:
		return fmt.Errorf("unknown pets subcommand %q", args[0])
	}
}

func cmdAppointments(ctx context.Context, gw *gateway.Gateway, alerts *alert.Channel, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("appointments needs a subcommand")
	}

	switch args[0] {
	case "list":
		items, err := gw.Appointments.List(ctx)
		if err != nil {
			return publishOutcome(alerts, err)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPET\tDATE\tSTATUS\tCOST")
		for _, a := range items {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.2f\n",
				a.ID, a.PetID, a.LocalDateTime.Time().Format("2006-01-02 15:04"), a.Status, a.Cost)
		}
		return tw.Flush()

	case "add":
		if len(args) != 3 {
			return fmt.Errorf("appointments add needs <pet-id> <yyyy-mm-ddThh:mm>")
		}
		petID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid pet id %q", args[1])
		}
		date, err := time.Parse("2006-01-02T15:04", args[2])
		if err != nil {
			return fmt.Errorf("invalid date %q", args[2])
		}
		a, err := gw.Appointments.Add(ctx, gateway.AppointmentInput{PetID: petID, Date: date})
		if err != nil {
			return publishOutcome(alerts, err)
		}
		alerts.Publish(fmt.Sprintf("Appointment %d scheduled.", a.ID), alert.SeveritySuccess)
		return nil

	case "delete":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := gw.Appointments.Delete(ctx, id); err != nil {
			return publishOutcome(alerts, err)
		}
		alerts.Publish("Appointment deleted.", alert.SeveritySuccess)
		return nil

	default:
		return fmt.Errorf("unknown appointments subcommand %q", args[0])
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
