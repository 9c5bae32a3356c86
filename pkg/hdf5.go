package hardware

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// Records written to the focalplane export. Field layout defines the
// HDF5 compound types. Strings are fixed-length [STRLEN]byte fields
// with a Str name suffix, as the hdf5 bindings require.
type DetectorHDF5 struct {
	nameStr  [STRLEN]byte
	waferStr [STRLEN]byte
	bandStr  [STRLEN]byte
	polStr   [STRLEN]byte
	uid      int32
	pixel    int32
	channel  int32
}

type BandHDF5 struct {
	nameStr [STRLEN]byte
	center  float64
	low     float64
	high    float64
	net     float64
	fwhm    float64
}

// Detector names run up to 24 characters (e.g. LAT_LT0_w00_p000_f230_A).
const STRLEN = 32

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) *hdf5.File {
	// create the file
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		panic(&ErrOpenFile{Filename: fname, Err: err})
	}
	return f
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(&ErrCreateGroup{GroupName: groupName, Err: err})
	}
	return g
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}
	chunks := []uint{32768}
	plist.SetChunk(chunks)
	// Set compression level
	plist.SetDeflate(4)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: fmt.Errorf("could not create a dtype: %w", err)})
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}
	return dset
}

// createQuatArray builds an unlimited x 4 float64 array for the
// detector pointing quaternions.
func createQuatArray(group *hdf5.Group, name string) *hdf5.Dataset {
	dims := []uint{0, 4}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims), 4}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}
	chunks := []uint{1024, 4}
	plist.SetChunk(chunks)
	plist.SetDeflate(4)

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, file_space, plist)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}
	return dset
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T) {
	array := []T{data}
	writeArrayToTable(dataset, &array)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	dimsGot, _, err := dataset.Space().SimpleExtentDims()
	if err != nil {
		panic(err)
	}
	rowsInFile := dimsGot[0]
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	// write data to the dataset
	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

// writeQuatRows appends n rows of 4 float64 values to the quaternion
// array. data is row-major, length n*4.
func writeQuatRows(dataset *hdf5.Dataset, data *[]float64) {
	n := uint(len(*data) / 4)

	dimsGot, _, err := dataset.Space().SimpleExtentDims()
	if err != nil {
		panic(err)
	}
	rowsInFile := dimsGot[0]
	newsize := []uint{rowsInFile + n, 4}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile, 0}
	count := []uint{n, 4}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}
