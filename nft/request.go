package nft

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// ModuleName is the Move module exposing every entry point used here
const ModuleName = "my_nft_collection"

// Kind selects which contract entry point a handler drives
type Kind int

const (
	OpMintRandom Kind = iota
	OpAddTemplate
	OpMintIntroduction
)

// operation describes the fixed wire contract of one entry point
type operation struct {
	function  string
	title     string
	busyLabel string
	needStore bool
	required  []string // FormInput field names, in argument order
}

var operations = map[Kind]operation{
	OpMintRandom: {
		function:  "mint_random_memory_nft",
		title:     "Mint Random Memory NFT",
		busyLabel: "Minting...",
		needStore: true,
	},
	OpAddTemplate: {
		function:  "add_memory_template",
		title:     "Add Memory Template",
		busyLabel: "Adding Template...",
		needStore: true,
		required:  []string{"Title", "Description", "ImageURL", "Rarity"},
	},
	OpMintIntroduction: {
		function:  "mint_self_introduction_nft",
		title:     "Mint Self Introduction NFT",
		busyLabel: "Minting...",
		required:  []string{"Name", "Description", "ImageURL", "Slogan"},
	},
}

// Kinds lists every operation in display order
func Kinds() []Kind {
	return []Kind{OpMintRandom, OpAddTemplate, OpMintIntroduction}
}

// Function returns the Move function name for the kind
func (k Kind) Function() string { return operations[k].function }

// Title returns the human label of the kind
func (k Kind) Title() string { return operations[k].title }

// BusyLabel returns the label shown on the trigger while a submission is pending
func (k Kind) BusyLabel() string { return operations[k].busyLabel }

// NeedsForm reports whether the kind takes user input
func (k Kind) NeedsForm() bool { return len(operations[k].required) > 0 }

func (k Kind) String() string {
	if op, ok := operations[k]; ok {
		return op.function
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FormInput holds the user-entered fields for one handler
type FormInput struct {
	Title       string `validate:"required"`
	Name        string `validate:"required"`
	Description string `validate:"required"`
	ImageURL    string `validate:"required"`
	Slogan      string `validate:"required"`
	Rarity      int    `validate:"gte=1,lte=5"`
}

// EmptyForm returns the default input a form resets to
func EmptyForm() FormInput {
	return FormInput{Rarity: 1}
}

func (f FormInput) trimmed() FormInput {
	f.Title = strings.TrimSpace(f.Title)
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Slogan = strings.TrimSpace(f.Slogan)
	return f
}

// Deployment identifies one published copy of the contract
type Deployment struct {
	Name            string
	Network         string
	PackageID       string
	TemplateStoreID string
}

// Target is the fully qualified Move function a CallRequest invokes
type Target struct {
	Package  string
	Module   string
	Function string
}

func (t Target) String() string {
	return t.Package + "::" + t.Module + "::" + t.Function
}

// ArgType tags the Move type of a call argument
type ArgType int

const (
	ArgObject ArgType = iota
	ArgString
	ArgU8
)

// Arg is one typed call argument
type Arg struct {
	Type  ArgType
	Value any
}

// ObjectArg references an on-chain object by ID
func ObjectArg(id string) Arg { return Arg{Type: ArgObject, Value: id} }

// StringArg passes a pure UTF-8 string
func StringArg(s string) Arg { return Arg{Type: ArgString, Value: s} }

// U8Arg passes a pure u8
func U8Arg(v uint8) Arg { return Arg{Type: ArgU8, Value: v} }

// CallRequest is an immutable, ordered contract invocation ready for signing
type CallRequest struct {
	kind   Kind
	target Target
	args   []Arg
}

// Kind returns the operation the request was built for
func (r CallRequest) Kind() Kind { return r.kind }

// Target returns the invoked function
func (r CallRequest) Target() Target { return r.target }

// Args returns a copy of the ordered arguments
func (r CallRequest) Args() []Arg { return append([]Arg(nil), r.args...) }

var validate = validator.New()

// Validate checks the fields required by kind without building anything
func Validate(kind Kind, form FormInput) error {
	op, ok := operations[kind]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownOperation, int(kind))
	}
	if len(op.required) == 0 {
		return nil
	}

	err := validate.StructPartial(form.trimmed(), op.required...)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	failed := lo.Map(verrs, func(fe validator.FieldError, _ int) string { return fe.Field() })
	// report in argument order, not validator traversal order
	return &ValidationError{Fields: lo.Filter(op.required, func(f string, _ int) bool {
		return lo.Contains(failed, f)
	})}
}

// Build validates form and produces the CallRequest for kind on deployment
func Build(kind Kind, form FormInput, d Deployment) (CallRequest, error) {
	if err := Validate(kind, form); err != nil {
		return CallRequest{}, err
	}
	op := operations[kind]
	if d.PackageID == "" || (op.needStore && d.TemplateStoreID == "") {
		return CallRequest{}, fmt.Errorf("%w: %q", ErrDeploymentIncomplete, d.Name)
	}

	f := form.trimmed()
	var args []Arg
	switch kind {
	case OpMintRandom:
		args = []Arg{ObjectArg(d.TemplateStoreID)}
	case OpAddTemplate:
		args = []Arg{
			ObjectArg(d.TemplateStoreID),
			StringArg(f.Title),
			StringArg(f.Description),
			StringArg(f.ImageURL),
			U8Arg(uint8(f.Rarity)),
		}
	case OpMintIntroduction:
		args = []Arg{
			StringArg(f.Name),
			StringArg(f.Description),
			StringArg(f.ImageURL),
			StringArg(f.Slogan),
		}
	}

	return CallRequest{
		kind:   kind,
		target: Target{Package: d.PackageID, Module: ModuleName, Function: op.function},
		args:   args,
	}, nil
}
