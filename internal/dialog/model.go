package dialog

type State string

const (
	StateIdle State = "idle"

	// Вход водителя по PIN
	StateLoginPickName State = "login_pick_name"
	StateLoginPIN      State = "login_pin"

	// Ежедневная запись (мастер ввода)
	StateEntryPickVehicle State = "entry_pick_vehicle"
	StateEntryDate        State = "entry_date"
	StateEntryEarnings    State = "entry_earnings"
	StateEntryCash        State = "entry_cash"
	StateEntryOffEarnings State = "entry_off_earnings"
	StateEntryOffCash     State = "entry_off_cash"
	StateEntryTrips       State = "entry_trips"
	StateEntryToll        State = "entry_toll"
	StateEntryCNG         State = "entry_cng"
	StateEntryPetrol      State = "entry_petrol"
	StateEntryOther       State = "entry_other"
	StateEntryLoginHours  State = "entry_login_hours"
	StateEntryOpening     State = "entry_opening"
	StateEntryConfirm     State = "entry_confirm"

	// Правка записи (выбор поля + новое значение)
	StateEntryEditPick  State = "entry_edit_pick"
	StateEntryEditValue State = "entry_edit_value"

	// Недельная сводка
	StateReportMenu    State = "report_menu"
	StateReportFrom    State = "report_from"
	StateReportTo      State = "report_to"
	StateReportVehicle State = "report_vehicle"
	StateReportTDSPick State = "report_tds_pick" // выбор недели/машины для TDS
	StateReportTDSVal  State = "report_tds_val"  // ввод суммы TDS

	// Произвольная сводка (итоги по водителям/машинам за период)
	StateSumMenu State = "sum_menu"
	StateSumFrom State = "sum_from"
	StateSumTo   State = "sum_to"

	// Ростер водителей (админ)
	StateAdmDrvMenu    State = "adm_drv_menu"
	StateAdmDrvName    State = "adm_drv_name"
	StateAdmDrvFather  State = "adm_drv_father"
	StateAdmDrvMobile  State = "adm_drv_mobile"
	StateAdmDrvLicence State = "adm_drv_licence"
	StateAdmDrvEmail   State = "adm_drv_email"
	StateAdmDrvAadhar  State = "adm_drv_aadhar"
	StateAdmDrvAddress State = "adm_drv_address"
	StateAdmDrvRoom    State = "adm_drv_room" // тумблер проживания
	StateAdmDrvPIN     State = "adm_drv_pin"  // выдача PIN новой учётке

	// Машины (админ)
	StateAdmVehMenu   State = "adm_veh_menu"
	StateAdmVehNumber State = "adm_veh_number"
	StateAdmVehType   State = "adm_veh_type"
	StateAdmVehAssign State = "adm_veh_assign" // выбор водителя для машины

	// База: загрузка Excel
	StateDBImportFile State = "db_import_file" // ожидание .xlsx с записями
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
