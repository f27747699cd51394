package plan

import "fmt"

// Assemble expands every package of the distribution into its four build
// descriptors, concatenated in declaration order. The package list is
// validated up front and generation is all-or-nothing: either every declared
// (package, target) pair yields a descriptor, or an error is returned and no
// descriptor is handed out.
func Assemble(packages []PackageSpec) ([]BuildDescriptor, error) {
	if err := validate(packages); err != nil {
		return nil, err
	}

	descriptors := make([]BuildDescriptor, 0, len(packages)*len(Targets()))
	for _, spec := range packages {
		expanded, err := Expand(spec)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, expanded...)
	}
	return descriptors, nil
}

// validate rejects malformed package lists before any descriptor is built.
// These are programmer errors in the declared distribution, not runtime
// conditions.
func validate(packages []PackageSpec) error {
	names := make(map[string]struct{}, len(packages))
	stems := make(map[string]string, len(packages))

	for i, spec := range packages {
		if spec.Name == "" {
			return fmt.Errorf("package at index %d has no name", i)
		}
		if spec.PackageDir == "" {
			return fmt.Errorf("package %q has no package directory", spec.Name)
		}
		if spec.DisplayName == "" {
			return fmt.Errorf("package %q has no display name", spec.Name)
		}
		if spec.OutputFileStem == "" {
			return fmt.Errorf("package %q has no output file stem", spec.Name)
		}
		if spec.EntryFilePath == "" {
			return fmt.Errorf("package %q has no entry file", spec.Name)
		}
		if _, ok := names[spec.Name]; ok {
			return fmt.Errorf("duplicate package name %q", spec.Name)
		}
		names[spec.Name] = struct{}{}
		if owner, ok := stems[spec.OutputFileStem]; ok {
			return fmt.Errorf("packages %q and %q share output file stem %q", owner, spec.Name, spec.OutputFileStem)
		}
		stems[spec.OutputFileStem] = spec.Name
	}
	return nil
}
