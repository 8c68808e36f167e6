package errors

// Error code constants, organized by phase per spec §7. Each phase has its
// own three-letter prefix so a code alone identifies where in the pipeline
// the failure occurred.
const (
	// Name resolution (NAM###)
	NAM001UnboundVar              = "NAM001" // UnboundVar
	NAM002UnboundTypeVariable      = "NAM002" // UnboundTypeVariable
	NAM003UnknownDestructor        = "NAM003" // UnknownDestructor
	NAM004UnknownConstructor       = "NAM004" // UnknownConstructor
	NAM005DuplicateTypeDecl        = "NAM005" // DuplicateTypeDeclaration
	NAM006DuplicateCtorDecl        = "NAM006" // DuplicateCtorDeclaration
	NAM007DuplicateDtorDecl        = "NAM007" // DuplicateDtorDeclaration
	NAM008ExternalDeclaration      = "NAM008" // ExternalDeclaration (forbidden body on extern)

	// Kinding (KND###)
	KND001KindMismatch  = "KND001"
	KND002ArityMismatch = "KND002"
	KND003NeedKindAnnotation = "KND003"

	// Typing (TYC###)
	TYC001TypeMismatch            = "TYC001"
	TYC002TypeExpected            = "TYC002"
	TYC003Subsumption             = "TYC003"
	TYC004NeedAnnotation          = "TYC004"
	TYC005InconsistentMatchers    = "TYC005"
	TYC006InconsistentCoMatchers  = "TYC006"
	TYC007InconsistentBranches    = "TYC007"
	TYC008WrongMain               = "TYC008"

	// Linking (LNK###)
	LNK001UnregisteredExtern = "LNK001"
	LNK002DuplicateBinding   = "LNK002"

	// Machine / runtime (MCH###) — impossible if the checker is correct;
	// surfaced as internal-invariant failures, not user errors (spec §7).
	MCH001ForceOnNonThunk   = "MCH001"
	MCH002MatchOnNonCtor    = "MCH002"
	MCH003CoMatchOnNonDtor  = "MCH003"
	MCH004KontNotAtStackTop = "MCH004"
	MCH005UnknownArm        = "MCH005"
	MCH006PrimFailure       = "MCH006"
	MCH007StepBudgetExceeded = "MCH007"

	// Primitive runtime (PRM###)
	PRM001UnknownPrimitive = "PRM001"
	PRM002ArityMismatch    = "PRM002"
	PRM003IOFailure        = "PRM003"
)

// Info describes one registered error code.
type Info struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps every code above to its descriptive metadata.
var Registry = map[string]Info{
	NAM001UnboundVar:         {NAM001UnboundVar, "name", "scope", "Unbound variable"},
	NAM002UnboundTypeVariable: {NAM002UnboundTypeVariable, "name", "scope", "Unbound type variable"},
	NAM003UnknownDestructor:  {NAM003UnknownDestructor, "name", "codata", "Unknown destructor"},
	NAM004UnknownConstructor: {NAM004UnknownConstructor, "name", "data", "Unknown constructor"},
	NAM005DuplicateTypeDecl:  {NAM005DuplicateTypeDecl, "name", "module", "Duplicate type declaration"},
	NAM006DuplicateCtorDecl:  {NAM006DuplicateCtorDecl, "name", "data", "Duplicate constructor declaration"},
	NAM007DuplicateDtorDecl:  {NAM007DuplicateDtorDecl, "name", "codata", "Duplicate destructor declaration"},
	NAM008ExternalDeclaration: {NAM008ExternalDeclaration, "name", "extern", "extern declaration carries a body"},

	KND001KindMismatch:  {KND001KindMismatch, "kind", "kind", "Kind mismatch"},
	KND002ArityMismatch: {KND002ArityMismatch, "kind", "arity", "Type constructor arity mismatch"},
	KND003NeedKindAnnotation: {KND003NeedKindAnnotation, "kind", "hole", "Hole needs a kind annotation"},

	TYC001TypeMismatch:           {TYC001TypeMismatch, "type", "type", "Type mismatch"},
	TYC002TypeExpected:           {TYC002TypeExpected, "type", "type", "Expected a different type shape"},
	TYC003Subsumption:            {TYC003Subsumption, "type", "subsumption", "Synthesized type does not subsume expected type"},
	TYC004NeedAnnotation:         {TYC004NeedAnnotation, "type", "annotation", "Term needs a type annotation to be synthesized"},
	TYC005InconsistentMatchers:   {TYC005InconsistentMatchers, "type", "match", "Match arms do not cover the constructor set"},
	TYC006InconsistentCoMatchers: {TYC006InconsistentCoMatchers, "type", "comatch", "Comatch arms do not cover the destructor set"},
	TYC007InconsistentBranches:   {TYC007InconsistentBranches, "type", "match", "Match arm result types are not equivalent"},
	TYC008WrongMain:              {TYC008WrongMain, "type", "entry", "Entry point has the wrong type"},

	LNK001UnregisteredExtern: {LNK001UnregisteredExtern, "link", "extern", "extern has no registered primitive implementation"},
	LNK002DuplicateBinding:   {LNK002DuplicateBinding, "link", "module", "Duplicate top-level binding"},

	MCH001ForceOnNonThunk:    {MCH001ForceOnNonThunk, "machine", "invariant", "force on a non-thunk value"},
	MCH002MatchOnNonCtor:     {MCH002MatchOnNonCtor, "machine", "invariant", "match on a non-constructor value"},
	MCH003CoMatchOnNonDtor:   {MCH003CoMatchOnNonDtor, "machine", "invariant", "comatch with no pending destructor frame"},
	MCH004KontNotAtStackTop:  {MCH004KontNotAtStackTop, "machine", "invariant", "ret with no matching continuation frame"},
	MCH005UnknownArm:         {MCH005UnknownArm, "machine", "invariant", "no arm matches the scrutinee's tag"},
	MCH006PrimFailure:        {MCH006PrimFailure, "machine", "primitive", "primitive invocation failed"},
	MCH007StepBudgetExceeded: {MCH007StepBudgetExceeded, "machine", "budget", "step budget exceeded"},

	PRM001UnknownPrimitive: {PRM001UnknownPrimitive, "primitive", "registration", "no primitive registered for this extern"},
	PRM002ArityMismatch:    {PRM002ArityMismatch, "primitive", "arity", "primitive invoked with the wrong number of arguments"},
	PRM003IOFailure:        {PRM003IOFailure, "primitive", "io", "virtual OS I/O operation failed"},
}

// Lookup returns metadata for a code.
func Lookup(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}

// IsRuntimeInvariant reports whether code names a "should be impossible if
// the checker is correct" class of error (spec §7).
func IsRuntimeInvariant(code string) bool {
	info, ok := Lookup(code)
	return ok && info.Phase == "machine" && info.Category == "invariant"
}
