package gen

import (
	"fmt"
	"path"
	"strings"
)

// Source and resource roots of a Kotlin project.
const (
	KotlinSourceRoot   = "src/main/kotlin"
	KotlinResourceRoot = "src/main/resources"
)

// Sub folders of the generated package.
const (
	controllerDir  = "controller"
	serviceDir     = "service"
	serviceImplDir = "service/impl"
	mapperDir      = "dao"
	entityDir      = "model/entity"
	dtoDir         = "model/dto"
	paramDir       = "model/param"
	mapperXMLDir   = "mapper"
)

// OutputKind is the logical kind of a generated file.
type OutputKind uint8

// List of output kinds.
const (
	Controller OutputKind = iota
	Service
	ServiceImpl
	Mapper
	Entity
	MapperXML
	DTO
	SaveDTO
	UpdateDTO
	QueryParam
	Other
	endOutputs
)

var outputNames = [...]string{
	Controller:  "controller",
	Service:     "service",
	ServiceImpl: "serviceImpl",
	Mapper:      "mapper",
	Entity:      "entity",
	MapperXML:   "mapperXml",
	DTO:         "dto",
	SaveDTO:     "saveDto",
	UpdateDTO:   "updateDto",
	QueryParam:  "queryParam",
	Other:       "other",
}

// String returns the path set key of the kind.
func (k OutputKind) String() string {
	if k < endOutputs {
		return outputNames[k]
	}
	return fmt.Sprintf("OutputKind(%d)", uint8(k))
}

// PathSet maps each output kind to its directory or file path.
type PathSet map[OutputKind]string

// Layout describes where a project's sources and resources are generated.
type Layout struct {
	OutputDir    string
	ProjectName  string
	SourceRoot   string
	ResourceRoot string
	PackageName  string
	ModuleName   string
}

// KotlinLayout returns the layout of a Kotlin project for the configuration.
func KotlinLayout(c *Config) Layout {
	return Layout{
		OutputDir:    c.OutputDir,
		ProjectName:  c.ProjectName,
		SourceRoot:   KotlinSourceRoot,
		ResourceRoot: KotlinResourceRoot,
		PackageName:  c.PackageName,
		ModuleName:   c.ModuleName,
	}
}

// PackagePath returns the package segments joined with "/" and the module appended.
// Empty package or module names are not validated here.
func (l Layout) PackagePath() string {
	return strings.Join(strings.Split(l.PackageName, "."), "/") + "/" + l.ModuleName
}

// ProjectPath returns the project root directory.
func (l Layout) ProjectPath() string {
	return l.OutputDir + "/" + l.ProjectName
}

// BasePath returns the source directory of the generated package.
func (l Layout) BasePath() string {
	return l.ProjectPath() + "/" + l.SourceRoot + "/" + l.PackagePath()
}

// MapperXMLPath returns the directory of the mapper XML files. It lives in
// the resource tree, parallel to the source tree.
func (l Layout) MapperXMLPath() string {
	return l.ProjectPath() + "/" + l.ResourceRoot + "/" + mapperXMLDir + "/" + l.ModuleName
}

// dir returns the sub folder of the base path. The trailing separator
// marks the path as a directory.
func (l Layout) dir(sub string) string {
	return l.BasePath() + "/" + sub + "/"
}

// Resolve returns the output paths of the entity.
func (l Layout) Resolve(n Names) PathSet {
	return PathSet{
		Controller:  l.dir(controllerDir),
		Service:     l.dir(serviceDir),
		ServiceImpl: l.dir(serviceImplDir),
		Mapper:      l.dir(mapperDir),
		Entity:      l.dir(entityDir),
		MapperXML:   l.MapperXMLPath(),
		DTO:         DTOFile(n.LowerCamelEntityName, n.DTOName+kotlinExt),
		SaveDTO:     DTOFile(n.LowerCamelEntityName, n.SaveDTOName+kotlinExt),
		UpdateDTO:   DTOFile(n.LowerCamelEntityName, n.UpdateDTOName+kotlinExt),
		QueryParam:  ParamFile(n.QueryParamName + kotlinExt),
		Other:       l.BasePath(),
	}
}

// DTOFile returns the path of a DTO file relative to the other bucket.
func DTOFile(lowerEntity, file string) string {
	return "../" + dtoDir + "/" + lowerEntity + "/" + file
}

// ParamFile returns the path of a query parameter file relative to the other bucket.
func ParamFile(file string) string {
	return "../" + paramDir + "/" + file
}

// ResolveCustom returns the location of a custom file. Custom files are
// placed under a folder named after the entity, the leading "../" of
// DTOFile and ParamFile cancels it.
func ResolveCustom(other, lowerEntity, rel string) string {
	return path.Join(other, lowerEntity, rel)
}

const kotlinExt = ".kt"

var fileFormats = [...]string{
	Controller:  "%sController.kt",
	Service:     "I%sService.kt",
	ServiceImpl: "%sServiceImpl.kt",
	Mapper:      "%sMapper.kt",
	Entity:      "%s.kt",
	MapperXML:   "%sMapper.xml",
}

// FileName returns the file name of a standard output of the entity.
// Custom outputs carry their file name in the path set.
func FileName(k OutputKind, entity string) string {
	if k > MapperXML {
		return ""
	}
	return fmt.Sprintf(fileFormats[k], entity)
}
