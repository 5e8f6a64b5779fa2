package ir

import (
	"fmt"

	"github.com/gogpu/slate/profile"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	// Optional context
	Function string
	Block    int
	Inst     int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Function != "" {
		if e.Block >= 0 {
			return fmt.Sprintf("in function %s, block %d, instruction %d: %s", e.Function, e.Block, e.Inst, e.Message)
		}
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	return e.Message
}

// Validator validates lowered IR modules.
type Validator struct {
	module       *Module
	errors       []ValidationError
	functionName string
}

// Validate checks the lowered module for structural correctness.
// Returns validation errors if any, or nil if the module is valid.
func Validate(module *Module) ([]ValidationError, error) {
	if module == nil {
		return nil, fmt.Errorf("module is nil")
	}

	v := &Validator{
		module: module,
		errors: make([]ValidationError, 0),
	}

	v.validateFunctions()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// validateFunctions checks all functions.
func (v *Validator) validateFunctions() {
	names := make(map[string]bool)

	for i := range v.module.Functions {
		fn := &v.module.Functions[i]
		if fn.Name != "" {
			if names[fn.Name] {
				v.addError(fmt.Sprintf("duplicate function name %q", fn.Name))
			}
			names[fn.Name] = true
		}

		v.functionName = fn.Name
		v.validateFunction(fn)
	}
}

// validateFunction validates a single function.
func (v *Validator) validateFunction(fn *Function) {
	if ep := fn.EntryPoint; ep != nil {
		if ep.Profile.Stage == profile.StageCompute {
			if ep.Workgroup[0] == 0 || ep.Workgroup[1] == 0 || ep.Workgroup[2] == 0 {
				v.addErrorInFunction("compute entry point workgroup size must be non-zero")
			}
		}
	}

	for bi := range fn.Blocks {
		for ii, inst := range fn.Blocks[bi].Insts {
			v.validateInst(bi, ii, &inst)
		}
	}
}

// validateInst validates a single instruction.
func (v *Validator) validateInst(block, index int, inst *Instruction) {
	if inst.Kind == nil {
		v.addErrorInInst(block, index, "instruction has nil kind")
		return
	}

	switch kind := inst.Kind.(type) {
	case InstOp:
		// Ordinary operations are always valid.

	case InstCall:
		if int(kind.Callee) >= len(v.module.Functions) {
			v.addErrorInInst(block, index, fmt.Sprintf("callee %d does not exist", kind.Callee))
		}

	case InstRequireCaps:
		if kind.Caps.Empty() {
			v.addErrorInInst(block, index, "capability requirement marker has empty capability set")
		}
	}
}

func (v *Validator) addError(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message: msg,
		Block:   -1,
		Inst:    -1,
	})
}

func (v *Validator) addErrorInFunction(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:  msg,
		Function: v.functionName,
		Block:    -1,
		Inst:     -1,
	})
}

func (v *Validator) addErrorInInst(block, index int, msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:  msg,
		Function: v.functionName,
		Block:    block,
		Inst:     index,
	})
}
