// Package gen generates the Kotlin sources of a zetaframework project from
// table metadata.
//
// For every table selected by the configuration, the generator derives the
// class names, the output paths and the template bindings, then hands one
// job per file to a Renderer.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Config (YAML file, options or Build)
//	        ↓
//	   load.Inspector (table metadata)
//	        ↓
//	   DeriveNames → Layout.Resolve → BuildBinding
//	        ↓
//	   Renderer (TemplateWriter by default)
//	        ↓
//	   Generated sources under outputDir/projectName
//
// Name, path and binding derivation is pure. Tables are generated in
// parallel and independently: a table that fails is recorded in the Report
// and the other tables continue.
//
// # Output
//
// For an entity User in package com.zeta and module system:
//
//	{outputDir}/{projectName}/
//	├── src/main/kotlin/com/zeta/system/
//	│   ├── controller/UserController.kt
//	│   ├── service/IUserService.kt
//	│   ├── service/impl/UserServiceImpl.kt
//	│   ├── dao/UserMapper.kt
//	│   └── model/
//	│       ├── entity/User.kt
//	│       ├── dto/user/UserDTO.kt, UserSaveDTO.kt, UserUpdateDTO.kt
//	│       └── param/UserQueryParam.kt
//	└── src/main/resources/mapper/system/UserMapper.xml
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithOutputDir("/tmp/codeGen"),
//	    gen.WithProject("zeta-kotlin"),
//	    gen.WithPackage("com.zeta"),
//	    gen.WithModule("system"),
//	    gen.WithTables("sys_user", "sys_dept"),
//	    gen.WithTablePrefix("sys_"),
//	)
//
// or loaded from a YAML file with LoadConfig.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: invalid configuration, fatal for the run
//   - NameError: degenerate derived name, fails one table
//   - GenerationError: introspection, render or write failure
//
// Each matches its sentinel with errors.Is:
//
//	report, err := g.Run(ctx)
//	if errors.Is(err, gen.ErrInvalidConfiguration) {
//	    // Fix the configuration
//	}
//	for _, res := range report.Failed() {
//	    if errors.Is(res.Err, gen.ErrWrite) {
//	        // Handle write failure
//	    }
//	}
package gen
