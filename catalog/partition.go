package catalog

import "fmt"

// Partition is a status based subset of instances shown as one listing
type Partition int

const (
	PartitionAvailable Partition = iota + 1
	PartitionOnLoan
	PartitionMaintenance
	PartitionReserved
	// PartitionMyLoans is the requester's own instances on loan
	PartitionMyLoans
)

func (p Partition) String() string {
	switch p {
	case PartitionAvailable:
		return "available"
	case PartitionOnLoan:
		return "on_loan"
	case PartitionMaintenance:
		return "maintenance"
	case PartitionReserved:
		return "reserved"
	case PartitionMyLoans:
		return "my_loans"
	}
	return "unknown"
}

// PartitionOf returns the partition listing instances with status s
func PartitionOf(s Status) Partition {
	switch s {
	case Available:
		return PartitionAvailable
	case OnLoan:
		return PartitionOnLoan
	case Maintenance:
		return PartitionMaintenance
	case Reserved:
		return PartitionReserved
	}
	return 0
}

// Filter builds the store query for the partition. requester is only used by PartitionMyLoans.
func (p Partition) Filter(requester string) (InstanceFilter, error) {
	switch p {
	case PartitionAvailable:
		return InstanceFilter{Status: Available}, nil
	case PartitionOnLoan:
		return InstanceFilter{Status: OnLoan}, nil
	case PartitionMaintenance:
		return InstanceFilter{Status: Maintenance}, nil
	case PartitionReserved:
		return InstanceFilter{Status: Reserved}, nil
	case PartitionMyLoans:
		if requester == "" {
			return InstanceFilter{}, fmt.Errorf("%w: my loans requires a requester", ErrInvalid)
		}
		return InstanceFilter{Status: OnLoan, Borrower: requester}, nil
	}
	return InstanceFilter{}, fmt.Errorf("%w: partition %d", ErrInvalid, p)
}
