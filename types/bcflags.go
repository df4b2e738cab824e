package types

type BCFLAG uint8

const (
	BC_None      BCFLAG = iota
	BC_Essential        // Dirichlet, fixed nodal value
	BC_Natural          // Neumann, prescribed flux along an edge
	BC_Mixed            // Robin, alpha*T + beta along an edge
)

func (bf BCFLAG) String() string {
	switch bf {
	case BC_Essential:
		return "EBC"
	case BC_Natural:
		return "NBC"
	case BC_Mixed:
		return "MBC"
	}
	return "None"
}
