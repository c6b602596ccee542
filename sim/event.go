package sim

import (
	"fmt"
)

// Instruction is one step of a run. Each instruction is executed against the
// warehouse exactly once, in script order.
type Instruction interface {
	Execute(*Warehouse) error
	String() string
}

// OrderInstruction submits a customer order for a color/model combination.
type OrderInstruction struct {
	Model string
	Color string
}

func (in OrderInstruction) String() string { return fmt.Sprintf("Order %s %s", in.Model, in.Color) }

// Execute translates the product and hands the order to the batcher.
func (in OrderInstruction) Execute(wh *Warehouse) error {
	if _, err := wh.Batcher.SubmitColorModel(in.Color, in.Model); err != nil {
		return wh.reject("", "", "order", err)
	}
	return nil
}

// HireInstruction brings a worker into the warehouse.
type HireInstruction struct {
	Role Role
	Name string
}

func (in HireInstruction) String() string { return fmt.Sprintf("%s %s ready", in.Role, in.Name) }

// Execute hires the worker; hiring an existing worker again has no effect.
func (in HireInstruction) Execute(wh *Warehouse) error {
	if _, err := wh.Roster.Hire(in.Role, in.Name); err != nil {
		return wh.reject(in.Name, in.Role, "hire", err)
	}
	return nil
}

// ReceiveInstruction asks a worker to take its next unit of work.
type ReceiveInstruction struct {
	Role Role
	Name string
}

func (in ReceiveInstruction) String() string { return fmt.Sprintf("%s %s get", in.Role, in.Name) }

func (in ReceiveInstruction) Execute(wh *Warehouse) error {
	w, err := wh.worker(in.Role, in.Name, "receive")
	if err != nil {
		return err
	}
	return w.Receive()
}

// ActInstruction presents one token (SKU or location) to a worker.
type ActInstruction struct {
	Role  Role
	Name  string
	Verb  string
	Token Token
}

func (in ActInstruction) String() string {
	s := fmt.Sprintf("%s %s %s %s", in.Role, in.Name, in.Verb, in.Token.Value)
	if in.Token.Side != SideNone {
		s += " " + string(in.Token.Side)
	}
	return s
}

func (in ActInstruction) Execute(wh *Warehouse) error {
	w, err := wh.worker(in.Role, in.Name, "act")
	if err != nil {
		return err
	}
	return w.Act(in.Token)
}

// PushInstruction hands a worker's finished unit to the next stage.
type PushInstruction struct {
	Role Role
	Name string
	Verb string
}

func (in PushInstruction) String() string { return fmt.Sprintf("%s %s %s", in.Role, in.Name, in.Verb) }

func (in PushInstruction) Execute(wh *Warehouse) error {
	w, err := wh.worker(in.Role, in.Name, "push")
	if err != nil {
		return err
	}
	return w.Push()
}

// RescanInstruction restarts a worker's checks from the first item.
type RescanInstruction struct {
	Role Role
	Name string
}

func (in RescanInstruction) String() string { return fmt.Sprintf("%s %s rescan", in.Role, in.Name) }

func (in RescanInstruction) Execute(wh *Warehouse) error {
	w, err := wh.worker(in.Role, in.Name, "rescan")
	if err != nil {
		return err
	}
	return w.Rescan()
}

// TruckInstruction sends the active truck away and brings in an empty one.
type TruckInstruction struct{}

func (TruckInstruction) String() string { return "Truck new" }

func (TruckInstruction) Execute(wh *Warehouse) error {
	wh.Trucks.SpawnTruck()
	return nil
}

// worker looks up a hired worker and checks it holds role.
func (wh *Warehouse) worker(role Role, name, op string) (Worker, error) {
	w, err := wh.Roster.Get(name)
	if err != nil {
		return nil, wh.reject(name, role, op, err)
	}
	if w.Role() != role {
		err = fmt.Errorf("%w: %s is a %s, not a %s", ErrRoleConflict, name, w.Role(), role)
		return nil, wh.reject(name, role, op, err)
	}
	return w, nil
}
