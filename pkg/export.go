package hardware

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer exports a hardware model to an HDF5 file: detector records and
// pointing quaternions under /Focalplane, band properties under /Bands.
type Writer struct {
	File            *hdf5.File
	Filename        string
	FocalplaneGroup *hdf5.Group
	BandsGroup      *hdf5.Group
	DetectorTable   *hdf5.Dataset
	QuatArray       *hdf5.Dataset
	BandTable       *hdf5.Dataset
	DetCounter      int
}

func NewWriter(filename string) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.FocalplaneGroup = createGroup(writer.File, "Focalplane")
	writer.BandsGroup = createGroup(writer.File, "Bands")
	writer.DetectorTable = createTable(writer.FocalplaneGroup, "detectors", DetectorHDF5{})
	writer.QuatArray = createQuatArray(writer.FocalplaneGroup, "quats")
	writer.BandTable = createTable(writer.BandsGroup, "bands", BandHDF5{})
	writer.DetCounter = 0
	return writer
}

// WriteHardware writes all detectors and bands of the model. Rows are
// sorted by detector and band name so exports are reproducible.
func (w *Writer) WriteHardware(hw *Hardware) {
	names := hw.DetectorNames()

	// The arrays MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	records := make([]DetectorHDF5, len(names))
	quats := make([]float64, 4*len(names))
	for i, name := range names {
		det := hw.Detectors[name]
		records[i] = DetectorHDF5{
			nameStr:  convertToHdf5String(name),
			waferStr: convertToHdf5String(det.Wafer),
			bandStr:  convertToHdf5String(det.Band),
			polStr:   convertToHdf5String(det.Pol),
			uid:      det.UID,
			pixel:    int32(det.Pixel),
			channel:  int32(det.Channel),
		}
		copy(quats[4*i:4*i+4], det.Quat[:])
	}
	if len(records) > 0 {
		writeArrayToTable(w.DetectorTable, &records)
		writeQuatRows(w.QuatArray, &quats)
		w.DetCounter += len(records)
	}

	bandNames := sortedKeys(hw.Bands)
	bands := make([]BandHDF5, len(bandNames))
	for i, name := range bandNames {
		band := hw.Bands[name]
		bands[i] = BandHDF5{
			nameStr: convertToHdf5String(name),
			center:  band.Center,
			low:     band.Low,
			high:    band.High,
			net:     band.NET,
			fwhm:    band.FWHM,
		}
	}
	if len(bands) > 0 {
		writeArrayToTable(w.BandTable, &bands)
	}
}

func (w *Writer) Close() error {
	var errs []error

	if err := w.DetectorTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing detector table: %w", err))
	}
	if err := w.QuatArray.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing quaternion array: %w", err))
	}
	if err := w.BandTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing band table: %w", err))
	}
	if err := w.FocalplaneGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing focalplane group: %w", err))
	}
	if err := w.BandsGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing bands group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
