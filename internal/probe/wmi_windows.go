//go:build windows

package probe

import (
	"errors"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// wmiComputerSystem returns the manufacturer and model strings of
// Win32_ComputerSystem via WMI. Kept separate from the probe so SystemModel
// can fall back to wmic when COM is unavailable (e.g. Server Core).
func wmiComputerSystem() (out string, err error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE means COM was already initialized on this thread
		if !errors.As(err, &oleErr) || oleErr.Code() != 0x00000001 {
			return "", err
		}
	} else {
		defer ole.CoUninitialize()
	}

	locator, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return "", err
	}
	defer locator.Release()
	wmi, err := locator.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", err
	}
	defer wmi.Release()

	serviceRaw, err := oleutil.CallMethod(wmi, "ConnectServer")
	if err != nil {
		return "", err
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery",
		"SELECT Manufacturer, Model FROM Win32_ComputerSystem")
	if err != nil {
		return "", err
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := 0; i < int(countVar.Val); i++ {
		itemRaw, err := oleutil.CallMethod(result, "ItemIndex", i)
		if err != nil {
			return "", err
		}
		item := itemRaw.ToIDispatch()
		for _, prop := range []string{"Manufacturer", "Model"} {
			if v, err := oleutil.GetProperty(item, prop); err == nil {
				sb.WriteString(v.ToString())
				sb.WriteByte(' ')
			}
		}
		item.Release()
	}
	return sb.String(), nil
}
