package hal

func (d *Driver) EEPROMReadByte(addr uint16) byte {
	return d.board.EEPROM.ReadByte(addr)
}

// EEPROMWriteByte skips the write when the cell already holds v.
func (d *Driver) EEPROMWriteByte(addr uint16, v byte) {
	if d.board.EEPROM.ReadByte(addr) == v {
		return
	}
	d.board.EEPROM.WriteByte(addr, v)
}
